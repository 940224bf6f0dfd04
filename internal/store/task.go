package store

import (
	"context"

	"github.com/phrazzld/nanobanana-callback/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Implementations hand out copies: a Task returned from any method is never
// affected by later writes to the store.
type TaskStore interface {
	// CreateTask builds a task from params (see domain.NewTask) and stores it
	// under its TaskID, silently replacing any task already stored there.
	CreateTask(ctx context.Context, params domain.TaskParams) (domain.Task, error)

	// GetTask retrieves a task by ID.
	// Returns ErrTaskNotFound if no task is stored under taskID.
	GetTask(ctx context.Context, taskID string) (domain.Task, error)

	// UpdateTask applies a status update to an existing task.
	// Returns ErrTaskNotFound if the task does not exist; nothing is created.
	UpdateTask(
		ctx context.Context,
		taskID string,
		status domain.TaskStatus,
		resultURL string,
	) (domain.Task, error)

	// UpsertTask updates the task named by params.TaskID if it exists and
	// creates it otherwise, as a single atomic step. The boolean reports
	// whether a new task was created. An empty TaskID is rejected with
	// ErrInvalidEntity.
	UpsertTask(ctx context.Context, params domain.TaskParams) (domain.Task, bool, error)

	// ListTasks returns a snapshot of every stored task in the order the
	// tasks were first created. Returns an empty slice when the store is empty.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// DeleteTask removes a task and reports whether one was removed.
	DeleteTask(ctx context.Context, taskID string) (bool, error)

	// Count returns the number of stored tasks.
	Count(ctx context.Context) (int, error)
}
