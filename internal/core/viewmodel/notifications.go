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

type NotificationsState struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
	IsLoading     bool                  `json:"is_loading"`
	ErrorMessage  string                `json:"error_message,omitempty"`
}

type Notifications struct {
	svc ports.NotificationService
	log zerolog.Logger

	mu     sync.Mutex
	items  []domain.Notification
	unread int
	progress
}

func NewNotifications(svc ports.NotificationService, log zerolog.Logger) *Notifications {
	return &Notifications{svc: svc, log: log}
}

// Load fetches the list and the unread counter concurrently; either failure
// fails the load and keeps the previous data.
func (n *Notifications) Load(ctx context.Context) error {
	n.mu.Lock()
	n.begin()
	n.mu.Unlock()

	var (
		items  []domain.Notification
		unread int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = n.svc.ListNotifications(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		unread, err = n.svc.UnreadCount(gctx)
		return err
	})
	err := g.Wait()

	n.mu.Lock()
	defer n.mu.Unlock()
	n.end()
	if err != nil {
		n.fail("failed to load notifications", err)
		return err
	}
	n.items = items
	n.unread = unread
	return nil
}

func (n *Notifications) MarkRead(ctx context.Context, id int) error {
	err := n.svc.MarkRead(ctx, id)

	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil {
		n.fail("failed to mark notification as read", err)
		return err
	}
	if i := n.indexLocked(id); i >= 0 && !n.items[i].Read {
		n.items[i].Read = true
		n.decrementLocked()
	}
	return nil
}

func (n *Notifications) MarkAllRead(ctx context.Context) error {
	err := n.svc.MarkAllRead(ctx)

	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil {
		n.fail("failed to mark all notifications as read", err)
		return err
	}
	for i := range n.items {
		n.items[i].Read = true
	}
	n.unread = 0
	return nil
}

// Delete removes the notification and lowers the unread counter by one.
func (n *Notifications) Delete(ctx context.Context, id int) error {
	err := n.svc.DeleteNotification(ctx, id)

	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil {
		n.fail("failed to delete notification", err)
		return err
	}
	if i := n.indexLocked(id); i >= 0 {
		n.items = slices.Delete(n.items, i, i+1)
	}
	n.decrementLocked()
	return nil
}

func (n *Notifications) State() NotificationsState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return NotificationsState{
		Notifications: slices.Clone(n.items),
		UnreadCount:   n.unread,
		IsLoading:     n.loading(),
		ErrorMessage:  n.errorMessage,
	}
}

func (n *Notifications) indexLocked(id int) int {
	return slices.IndexFunc(n.items, func(it domain.Notification) bool { return it.ID == id })
}

func (n *Notifications) decrementLocked() {
	if n.unread > 0 {
		n.unread--
	}
}
