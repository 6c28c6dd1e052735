package ports

import (
	"context"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

// PageQuery filters GET /page. Zero values are omitted from the query string.
type PageQuery struct {
	Sort     string
	Status   string
	Type     string
	Favorite *bool
	PerPage  int
}

// CreatePageInput carries the fields of POST /page.
type CreatePageInput struct {
	Title       string
	Type        string
	WorkspaceID *int
}

type PageService interface {
	ListPages(ctx context.Context, q PageQuery) (*domain.PageList, error)
	GetPageDetail(ctx context.Context, id string) (*domain.PageDetail, error)
	CreatePage(ctx context.Context, in CreatePageInput) (*domain.Page, error)
	UpdatePage(ctx context.Context, id, title string) (*domain.Page, error)
	UpdatePageBlocks(ctx context.Context, id string, blocks []domain.Block) (*domain.PageDetail, error)
	DeletePage(ctx context.Context, id string) error
	// ToggleFavorite flips the favorite flag and returns its new value.
	ToggleFavorite(ctx context.Context, pageUUID string) (bool, error)
}

// BlockSaver is the subset of PageService used by autosave.
type BlockSaver interface {
	UpdatePageBlocks(ctx context.Context, id string, blocks []domain.Block) (*domain.PageDetail, error)
}

// SaveJob is one debounced block save handed to the save dispatcher.
// Done, when set, receives the outcome once the backend answered.
type SaveJob struct {
	PageID string
	Blocks []domain.Block
	Done   func(*domain.PageDetail, error)
}

// SaveScheduler debounces block saves per page.
type SaveScheduler interface {
	Schedule(job SaveJob)
	Flush(pageID string) bool
	Cancel(pageID string)
	Pending(pageID string) bool
}
