package handler

import (
	"context"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/viewmodel"
)

// The agent drives the same view-models a screen would. Each handler depends
// on the slice of a view-model it serves.

type SessionModel interface {
	State() viewmodel.SessionState
	Login(ctx context.Context, id domain.Identity, password string) error
	SignUp(ctx context.Context, name, email, password string) error
	SendCode(ctx context.Context, id domain.Identity) error
	ResendCode(ctx context.Context) error
	CheckCode(ctx context.Context, id domain.Identity, code string) error
	CancelCode()
	Logout(ctx context.Context) error
	ForgetLocal(ctx context.Context)
}

type PagesModel interface {
	Load(ctx context.Context) error
	SetSearch(query string)
	State() viewmodel.PagesState
	ToggleFavorite(ctx context.Context, pageUUID string) (bool, error)
}

type EditorModel interface {
	Open(ctx context.Context, id string) error
	UpdateBlocks(blocks []domain.Block) error
	UpdateTitle(ctx context.Context, title string) error
	Save() bool
	Close()
	State() viewmodel.EditorState
}

type TasksModel interface {
	Load(ctx context.Context) error
	State() viewmodel.TasksState
}

type NotificationsModel interface {
	Load(ctx context.Context) error
	MarkRead(ctx context.Context, id int) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id int) error
	State() viewmodel.NotificationsState
}

type TrashModel interface {
	Load(ctx context.Context) error
	ToggleSelection(key domain.TrashKey) bool
	Restore(ctx context.Context, key domain.TrashKey) error
	Purge(ctx context.Context, key domain.TrashKey) error
	RestoreSelected(ctx context.Context) error
	PurgeSelected(ctx context.Context) error
	State() viewmodel.TrashState
}

type HomeModel interface {
	Load(ctx context.Context) error
	State() viewmodel.HomeState
}

type CountriesModel interface {
	Load(ctx context.Context) error
	Select(value string) bool
	Search(query string) []domain.CountryCode
	State() viewmodel.CountriesState
}
