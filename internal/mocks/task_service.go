package mocks

import (
	"context"

	"github.com/phrazzld/nanobanana-callback/internal/domain"
	"github.com/phrazzld/nanobanana-callback/internal/service"
)

// TaskService is a mock implementation of service.TaskService for testing.
type TaskService struct {
	ApplyCallbackFn func(ctx context.Context, input service.CallbackInput) (service.CallbackResult, error)
	GetTaskFn       func(ctx context.Context, taskID string) (domain.Task, error)
	ListTasksFn     func(ctx context.Context) ([]domain.Task, error)

	// Calls records every ApplyCallback input in order.
	Calls []service.CallbackInput
}

// ApplyCallback implements service.TaskService
func (m *TaskService) ApplyCallback(
	ctx context.Context,
	input service.CallbackInput,
) (service.CallbackResult, error) {
	m.Calls = append(m.Calls, input)
	if m.ApplyCallbackFn != nil {
		return m.ApplyCallbackFn(ctx, input)
	}
	return service.CallbackResult{Task: domain.Task{TaskID: input.TaskID, Status: input.Status}}, nil
}

// GetTask implements service.TaskService
func (m *TaskService) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, taskID)
	}
	return domain.Task{}, service.ErrTaskNotFound
}

// ListTasks implements service.TaskService
func (m *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return []domain.Task{}, nil
}
