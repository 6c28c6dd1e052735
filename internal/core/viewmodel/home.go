package viewmodel

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

const (
	homeRecentPages = 6
	homeWorkspaces  = 12
	homeActivity    = 6
)

type HomeState struct {
	RecentPages  []domain.Page      `json:"recent_pages"`
	Workspaces   []domain.Workspace `json:"workspaces"`
	Activity     []domain.Activity  `json:"activity"`
	IsLoading    bool               `json:"is_loading"`
	ErrorMessage string             `json:"error_message,omitempty"`
}

// Home is the dashboard: recent pages, workspaces and the activity feed.
type Home struct {
	pages      ports.PageService
	workspaces ports.WorkspaceService
	activity   ports.ActivityService
	log        zerolog.Logger

	mu    sync.Mutex
	state HomeState
	progress
}

func NewHome(pages ports.PageService, workspaces ports.WorkspaceService, activity ports.ActivityService, log zerolog.Logger) *Home {
	return &Home{pages: pages, workspaces: workspaces, activity: activity, log: log}
}

// Load fetches all three sections concurrently; the screen only changes when
// all of them succeed.
func (h *Home) Load(ctx context.Context) error {
	h.mu.Lock()
	h.begin()
	h.mu.Unlock()

	var next HomeState
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := h.pages.ListPages(gctx, ports.PageQuery{Sort: RecentFirst, PerPage: homeRecentPages})
		if err != nil {
			return err
		}
		next.RecentPages = list.Data
		return nil
	})
	g.Go(func() error {
		var err error
		next.Workspaces, err = h.workspaces.ListWorkspaces(gctx, true, homeWorkspaces)
		return err
	})
	g.Go(func() error {
		var err error
		next.Activity, err = h.activity.ListActivity(gctx, homeActivity)
		return err
	})
	err := g.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.end()
	if err != nil {
		h.fail("failed to load data", err)
		return err
	}
	h.state = next
	return nil
}

func (h *Home) State() HomeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HomeState{
		RecentPages:  slices.Clone(h.state.RecentPages),
		Workspaces:   slices.Clone(h.state.Workspaces),
		Activity:     slices.Clone(h.state.Activity),
		IsLoading:    h.loading(),
		ErrorMessage: h.errorMessage,
	}
}
