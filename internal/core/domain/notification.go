package domain

import "time"

type Notification struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	TrashTypePage      = "page"
	TrashTypeWorkspace = "workspace"
)

// TrashItem is a soft-deleted page or workspace.
type TrashItem struct {
	ID            int       `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title,omitempty"`
	DeletedAt     time.Time `json:"deleted_at"`
	WorkspaceName string    `json:"workspace_name,omitempty"`
}

// TrashKey identifies a trash item across both item types.
type TrashKey struct {
	Type string `json:"type"`
	ID   int    `json:"id"`
}

func (t TrashItem) Key() TrashKey { return TrashKey{Type: t.Type, ID: t.ID} }
