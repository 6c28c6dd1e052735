package service

import (
	"context"
	"net/http"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

type taskService struct {
	api ports.Requester
}

func NewTaskService(api ports.Requester) ports.TaskService {
	return &taskService{api: api}
}

type taskList struct {
	Data []domain.Task `json:"data"`
}

type taskEnvelope struct {
	Data domain.Task `json:"data"`
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	ColumnID    *string `json:"column_id,omitempty"`
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func tasksPath(pageID string) string {
	return "/page/" + pathID(pageID) + "/tasks"
}

func (s *taskService) ListTasks(ctx context.Context, pageID string) ([]domain.Task, error) {
	var out taskList
	if err := s.api.Request(ctx, http.MethodGet, tasksPath(pageID), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (s *taskService) CreateTask(ctx context.Context, pageID string, in ports.CreateTaskInput) (*domain.Task, error) {
	req := createTaskRequest{Title: in.Title}
	if in.Description != "" {
		req.Description = &in.Description
	}
	if in.ColumnID != "" {
		req.ColumnID = &in.ColumnID
	}

	var out taskEnvelope
	if err := s.api.Request(ctx, http.MethodPost, tasksPath(pageID), req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (s *taskService) UpdateTask(ctx context.Context, pageID, taskID string, in ports.UpdateTaskInput) (*domain.Task, error) {
	req := updateTaskRequest{Title: in.Title, Description: in.Description, Status: in.Status}
	var out taskEnvelope
	if err := s.api.Request(ctx, http.MethodPut, tasksPath(pageID)+"/"+pathID(taskID), req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (s *taskService) DeleteTask(ctx context.Context, pageID, taskID string) error {
	return s.api.Request(ctx, http.MethodDelete, tasksPath(pageID)+"/"+pathID(taskID), nil, nil)
}
