package viewmodel

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

type EditorState struct {
	Page         *domain.PageDetail `json:"page,omitempty"`
	SavePending  bool               `json:"save_pending"`
	IsLoading    bool               `json:"is_loading"`
	ErrorMessage string             `json:"error_message,omitempty"`
}

// Editor is the page detail screen. Block edits apply locally at once and
// reach the backend through the save scheduler.
type Editor struct {
	pages ports.PageService
	saver ports.SaveScheduler
	log   zerolog.Logger

	mu   sync.Mutex
	page *domain.PageDetail
	progress
}

func NewEditor(pages ports.PageService, saver ports.SaveScheduler, log zerolog.Logger) *Editor {
	return &Editor{pages: pages, saver: saver, log: log}
}

// Open loads a page. Unsaved edits of the previously open page are sent first.
func (e *Editor) Open(ctx context.Context, id string) error {
	e.mu.Lock()
	prev := e.page
	e.begin()
	e.mu.Unlock()

	if prev != nil && prev.ID != id {
		e.saver.Flush(prev.ID)
	}

	page, err := e.pages.GetPageDetail(ctx, id)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.end()
	if err != nil {
		e.fail("failed to load page", err)
		return err
	}
	e.page = page
	return nil
}

// UpdateBlocks replaces the open page's blocks and schedules a debounced save.
func (e *Editor) UpdateBlocks(blocks []domain.Block) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.page == nil {
		return domain.ErrPageNotLoaded
	}
	e.page.Blocks = slices.Clone(blocks)

	pageID := e.page.ID
	e.saver.Schedule(ports.SaveJob{
		PageID: pageID,
		Blocks: slices.Clone(blocks),
		Done:   func(saved *domain.PageDetail, err error) { e.saved(pageID, saved, err) },
	})
	return nil
}

// saved runs on a dispatcher worker. The server copy replaces the local one
// only while no newer edit is waiting, so typing is never rolled back.
func (e *Editor) saved(pageID string, saved *domain.PageDetail, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.fail("failed to save changes", err)
		return
	}
	if e.page == nil || e.page.ID != pageID || saved == nil || e.saver.Pending(pageID) {
		return
	}
	e.page = saved
}

// Save sends pending edits without waiting for the quiet window.
func (e *Editor) Save() bool {
	e.mu.Lock()
	page := e.page
	e.mu.Unlock()
	if page == nil {
		return false
	}
	return e.saver.Flush(page.ID)
}

// UpdateTitle renames the page and patches the title locally once the
// server accepted it.
func (e *Editor) UpdateTitle(ctx context.Context, title string) error {
	e.mu.Lock()
	if e.page == nil {
		e.mu.Unlock()
		return domain.ErrPageNotLoaded
	}
	pageID := e.page.ID
	e.mu.Unlock()

	updated, err := e.pages.UpdatePage(ctx, pageID, title)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.fail("failed to update title", err)
		return err
	}
	if e.page != nil && e.page.ID == pageID {
		if updated != nil && updated.Title != "" {
			title = updated.Title
		}
		e.page.Title = title
	}
	return nil
}

// Close flushes pending edits and forgets the page.
func (e *Editor) Close() {
	e.mu.Lock()
	page := e.page
	e.page = nil
	e.mu.Unlock()

	if page != nil {
		e.saver.Flush(page.ID)
	}
}

func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := EditorState{IsLoading: e.loading(), ErrorMessage: e.errorMessage}
	if e.page != nil {
		cp := *e.page
		cp.Blocks = slices.Clone(e.page.Blocks)
		st.Page = &cp
		st.SavePending = e.saver.Pending(e.page.ID)
	}
	return st
}
