package viewmodel

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

type TrashState struct {
	Items        []domain.TrashItem `json:"items"`
	Selected     []domain.TrashKey  `json:"selected"`
	IsLoading    bool               `json:"is_loading"`
	ErrorMessage string             `json:"error_message,omitempty"`
}

// Trash is the trash screen with multi-selection. Items are keyed by type and
// id because a page and a workspace may share an id.
type Trash struct {
	svc ports.TrashService
	log zerolog.Logger

	mu       sync.Mutex
	items    []domain.TrashItem
	selected map[domain.TrashKey]struct{}
	progress
}

func NewTrash(svc ports.TrashService, log zerolog.Logger) *Trash {
	return &Trash{svc: svc, log: log, selected: map[domain.TrashKey]struct{}{}}
}

func (t *Trash) Load(ctx context.Context) error {
	t.mu.Lock()
	t.begin()
	t.mu.Unlock()

	items, err := t.svc.ListTrash(ctx, 0)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.end()
	if err != nil {
		t.fail("failed to load trash", err)
		return err
	}
	t.items = items
	for key := range t.selected {
		if t.indexLocked(key) < 0 {
			delete(t.selected, key)
		}
	}
	return nil
}

// ToggleSelection flips key in the selection and reports whether it is now selected.
func (t *Trash) ToggleSelection(key domain.TrashKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.selected[key]; ok {
		delete(t.selected, key)
		return false
	}
	t.selected[key] = struct{}{}
	return true
}

func (t *Trash) Restore(ctx context.Context, key domain.TrashKey) error {
	return t.apply(ctx, key, t.svc.Restore, "failed to restore item")
}

func (t *Trash) Purge(ctx context.Context, key domain.TrashKey) error {
	return t.apply(ctx, key, t.svc.Purge, "failed to delete item")
}

// RestoreSelected restores every selected item in list order, continuing past
// failures.
func (t *Trash) RestoreSelected(ctx context.Context) error {
	return t.applySelected(ctx, t.Restore)
}

func (t *Trash) PurgeSelected(ctx context.Context) error {
	return t.applySelected(ctx, t.Purge)
}

func (t *Trash) applySelected(ctx context.Context, op func(context.Context, domain.TrashKey) error) error {
	var errs []error
	for _, key := range t.selectedInOrder() {
		if err := op(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// apply removes the item from the list and the selection once the server
// accepted op.
func (t *Trash) apply(ctx context.Context, key domain.TrashKey, op func(context.Context, string, int) error, prefix string) error {
	err := op(ctx, key.Type, key.ID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.fail(prefix, err)
		return err
	}
	if i := t.indexLocked(key); i >= 0 {
		t.items = slices.Delete(t.items, i, i+1)
	}
	delete(t.selected, key)
	return nil
}

func (t *Trash) selectedInOrder() []domain.TrashKey {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]domain.TrashKey, 0, len(t.selected))
	for _, it := range t.items {
		if _, ok := t.selected[it.Key()]; ok {
			keys = append(keys, it.Key())
		}
	}
	return keys
}

func (t *Trash) indexLocked(key domain.TrashKey) int {
	return slices.IndexFunc(t.items, func(it domain.TrashItem) bool { return it.Key() == key })
}

func (t *Trash) State() TrashState {
	keys := t.selectedInOrder()

	t.mu.Lock()
	defer t.mu.Unlock()
	return TrashState{
		Items:        slices.Clone(t.items),
		Selected:     keys,
		IsLoading:    t.loading(),
		ErrorMessage: t.errorMessage,
	}
}
