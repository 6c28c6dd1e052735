package viewmodel

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
	"github.com/notaspace/notaspace-client/pkg/textfold"
)

// RecentFirst is the sort order of every page list the client shows.
const RecentFirst = "-updated_at"

type PagesState struct {
	Pages        []domain.Page `json:"pages"`
	Search       string        `json:"search,omitempty"`
	IsLoading    bool          `json:"is_loading"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Pages is the page list screen.
type Pages struct {
	pages ports.PageService
	log   zerolog.Logger

	mu     sync.Mutex
	items  []domain.Page
	search string
	progress
}

func NewPages(pages ports.PageService, log zerolog.Logger) *Pages {
	return &Pages{pages: pages, log: log}
}

func (p *Pages) Load(ctx context.Context) error {
	p.mu.Lock()
	p.begin()
	p.mu.Unlock()

	list, err := p.pages.ListPages(ctx, ports.PageQuery{Sort: RecentFirst})

	p.mu.Lock()
	defer p.mu.Unlock()
	p.end()
	if err != nil {
		p.fail("failed to load pages", err)
		return err
	}
	p.items = list.Data
	return nil
}

func (p *Pages) SetSearch(query string) {
	p.mu.Lock()
	p.search = query
	p.mu.Unlock()
}

// State returns the pages matching the current search.
func (p *Pages) State() PagesState {
	p.mu.Lock()
	defer p.mu.Unlock()

	filtered := make([]domain.Page, 0, len(p.items))
	for _, page := range p.items {
		if textfold.Contains(page.Title, p.search) {
			filtered = append(filtered, page)
		}
	}
	return PagesState{
		Pages:        filtered,
		Search:       p.search,
		IsLoading:    p.loading(),
		ErrorMessage: p.errorMessage,
	}
}

// ToggleFavorite flips the flag on the server and patches the cached page
// with the value the server returned.
func (p *Pages) ToggleFavorite(ctx context.Context, pageUUID string) (bool, error) {
	fav, err := p.pages.ToggleFavorite(ctx, pageUUID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.fail("failed to update favorite", err)
		return false, err
	}
	if i := slices.IndexFunc(p.items, func(pg domain.Page) bool { return pg.UUID == pageUUID }); i >= 0 {
		p.items[i].Favorite = fav
	}
	return fav, nil
}
