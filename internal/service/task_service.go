package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/nanobanana-callback/internal/domain"
	"github.com/phrazzld/nanobanana-callback/internal/events"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
	"github.com/phrazzld/nanobanana-callback/internal/store"
)

// Callback sources, recorded on emitted events and in logs.
const (
	SourceGenericCallback    = "callback"
	SourceNanoBananaCallback = "nanobanana"
)

// CallbackInput is the normalized content of an inbound callback.
type CallbackInput struct {
	Source    string
	TaskID    string
	Status    domain.TaskStatus
	ResultURL string
}

// CallbackResult is the outcome of applying a callback.
type CallbackResult struct {
	Task    domain.Task
	Created bool
}

// TaskService provides task-related operations
type TaskService interface {
	// ApplyCallback creates the task named in input or updates it if it
	// already exists. Returns a domain validation error if TaskID is empty.
	ApplyCallback(ctx context.Context, input CallbackInput) (CallbackResult, error)

	// GetTask retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetTask(ctx context.Context, taskID string) (domain.Task, error)

	// ListTasks returns every task in first-creation order.
	ListTasks(ctx context.Context) ([]domain.Task, error)
}

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "apply_callback", "get_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// It returns known sentinel errors directly without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks   store.TaskStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if a required dependency is nil.
func NewTaskService(
	tasks store.TaskStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		return nil, domain.NewValidationError("emitter", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		return nil, domain.NewValidationError("logger", "cannot be nil", domain.ErrValidation)
	}

	return &taskServiceImpl{
		tasks:   tasks,
		emitter: emitter,
		logger:  logger.With("component", "task_service"),
	}, nil
}

// ApplyCallback implements TaskService.
func (s *taskServiceImpl) ApplyCallback(ctx context.Context, input CallbackInput) (CallbackResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.TaskID == "" {
		return CallbackResult{}, domain.NewValidationError("taskId", "is required", domain.ErrValidation)
	}

	task, created, err := s.tasks.UpsertTask(ctx, domain.TaskParams{
		TaskID:    input.TaskID,
		Status:    input.Status,
		ResultURL: input.ResultURL,
	})
	if err != nil {
		return CallbackResult{}, NewTaskServiceError("apply_callback", "failed to upsert task", err)
	}

	eventType := events.TypeTaskUpdated
	if created {
		eventType = events.TypeTaskCreated
		log.Info("new task created",
			"task_id", task.TaskID,
			"status", task.Status,
			"source", input.Source)
	} else {
		log.Info("task updated",
			"task_id", task.TaskID,
			"status", task.Status,
			"source", input.Source)
	}

	if !task.Status.IsKnown() {
		log.Warn("callback reported an unrecognized status",
			"task_id", task.TaskID,
			"status", task.Status)
	}

	// The store is already updated; a failing handler must not fail the callback.
	if err := s.emitter.EmitEvent(ctx, events.NewTaskEvent(eventType, input.Source, task)); err != nil {
		log.Error("failed to emit task event",
			"error", err,
			"task_id", task.TaskID,
			"event_type", eventType)
	}

	return CallbackResult{Task: task, Created: created}, nil
}

// GetTask implements TaskService.
func (s *taskServiceImpl) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	task, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return domain.Task{}, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}
