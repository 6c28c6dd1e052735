package domain

import "time"

// Task is a card on a task page.
type Task struct {
	ID          int       `json:"id"`
	UUID        string    `json:"uuid"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Favorite    bool      `json:"favorite,omitempty"`
	PageID      int       `json:"page_id,omitempty"`
	ColumnID    string    `json:"column_id,omitempty"`
	AssigneeID  int       `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
