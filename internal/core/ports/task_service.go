package ports

import (
	"context"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

type CreateTaskInput struct {
	Title       string
	Description string
	ColumnID    string
}

// UpdateTaskInput leaves nil fields untouched on the server.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
}

type TaskService interface {
	ListTasks(ctx context.Context, pageID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, pageID string, in CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, pageID, taskID string, in UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, pageID, taskID string) error
}
