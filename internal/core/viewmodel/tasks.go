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

// taskPageFanout caps concurrent task list requests.
const taskPageFanout = 4

type TasksState struct {
	Tasks        []domain.Task `json:"tasks"`
	IsLoading    bool          `json:"is_loading"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Tasks aggregates the tasks of every task page, most recently updated first.
type Tasks struct {
	pages ports.PageService
	tasks ports.TaskService
	log   zerolog.Logger

	mu    sync.Mutex
	items []domain.Task
	progress
}

func NewTasks(pages ports.PageService, tasks ports.TaskService, log zerolog.Logger) *Tasks {
	return &Tasks{pages: pages, tasks: tasks, log: log}
}

// Load fails only when the task pages cannot be listed; a page whose tasks
// fail to load is skipped.
func (t *Tasks) Load(ctx context.Context) error {
	t.mu.Lock()
	t.begin()
	t.mu.Unlock()

	all, err := t.collect(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.end()
	if err != nil {
		t.fail("failed to load tasks", err)
		return err
	}
	t.items = all
	return nil
}

func (t *Tasks) collect(ctx context.Context) ([]domain.Task, error) {
	list, err := t.pages.ListPages(ctx, ports.PageQuery{Type: domain.PageTypeTask})
	if err != nil {
		return nil, err
	}

	perPage := make([][]domain.Task, len(list.Data))
	var g errgroup.Group
	g.SetLimit(taskPageFanout)
	for i, page := range list.Data {
		i, page := i, page
		g.Go(func() error {
			tasks, err := t.tasks.ListTasks(ctx, page.UUID)
			if err != nil {
				t.log.Warn().Err(err).Str("page_uuid", page.UUID).Msg("skipping task page")
				return nil
			}
			perPage[i] = tasks
			return nil
		})
	}
	_ = g.Wait()

	var all []domain.Task
	for _, tasks := range perPage {
		all = append(all, tasks...)
	}
	slices.SortStableFunc(all, func(a, b domain.Task) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return all, nil
}

func (t *Tasks) State() TasksState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TasksState{
		Tasks:        slices.Clone(t.items),
		IsLoading:    t.loading(),
		ErrorMessage: t.errorMessage,
	}
}
