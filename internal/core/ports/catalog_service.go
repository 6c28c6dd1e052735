package ports

import (
	"context"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

type WorkspaceService interface {
	ListWorkspaces(ctx context.Context, withStats bool, perPage int) ([]domain.Workspace, error)
}

type ActivityService interface {
	ListActivity(ctx context.Context, limit int) ([]domain.Activity, error)
}

type CountryService interface {
	ListCountryCodes(ctx context.Context) ([]domain.CountryCode, error)
}

type NotificationService interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int) error
	MarkAllRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id int) error
}

type TrashService interface {
	ListTrash(ctx context.Context, perPage int) ([]domain.TrashItem, error)
	Restore(ctx context.Context, itemType string, id int) error
	Purge(ctx context.Context, itemType string, id int) error
}
