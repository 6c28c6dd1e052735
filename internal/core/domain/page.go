package domain

import "time"

// Page is the list representation of a note, board or task page.
type Page struct {
	ID          int       `json:"id"`
	UUID        string    `json:"uuid"`
	Title       string    `json:"title,omitempty"`
	Type        string    `json:"type"`
	Status      string    `json:"status,omitempty"`
	Favorite    bool      `json:"favorite,omitempty"`
	WorkspaceID *int      `json:"workspace_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PageList is the paginated envelope returned by GET /page.
type PageList struct {
	Data        []Page `json:"data"`
	CurrentPage int    `json:"current_page,omitempty"`
	LastPage    int    `json:"last_page,omitempty"`
	PerPage     int    `json:"per_page,omitempty"`
	Total       int    `json:"total,omitempty"`
}

// Block is one typed content unit of a page body, ordered by Position.
type Block struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Content       string     `json:"content"`
	Position      int        `json:"position"`
	PageID        int        `json:"page_id,omitempty"`
	CommentsCount int        `json:"comments_count,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// PagePermissions lists what the current user may do with a page.
type PagePermissions struct {
	View    bool `json:"view"`
	Comment bool `json:"comment"`
	Update  bool `json:"update"`
}

// PageDetail is a page together with its blocks; ID is the page uuid.
type PageDetail struct {
	ID          string           `json:"id"`
	Title       string           `json:"title,omitempty"`
	Type        string           `json:"type"`
	Blocks      []Block          `json:"blocks,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Permissions *PagePermissions `json:"permissions,omitempty"`
}

// PageTypeTask marks pages that hold a task board.
const PageTypeTask = "task"
