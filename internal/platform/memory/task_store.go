package memory

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/nanobanana-callback/internal/domain"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
	"github.com/phrazzld/nanobanana-callback/internal/store"
)

// Compile-time check to ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// TaskStore keeps tasks in a map guarded by a RWMutex.
//
// Entries are domain.Task values, so callers always receive copies and an
// update replaces the stored value wholesale. order records first-creation
// order for ListTasks.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
	order []string
	now   func() time.Time
}

// TaskStoreOption customises a TaskStore.
type TaskStoreOption func(*TaskStore)

// WithClock replaces the time source used for task timestamps.
func WithClock(now func() time.Time) TaskStoreOption {
	return func(s *TaskStore) {
		s.now = now
	}
}

// NewTaskStore creates an empty TaskStore.
func NewTaskStore(opts ...TaskStoreOption) *TaskStore {
	s := &TaskStore{
		tasks: make(map[string]domain.Task),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTask implements store.TaskStore.
func (s *TaskStore) CreateTask(ctx context.Context, params domain.TaskParams) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, store.NewStoreError("task", "create", "context done", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := domain.NewTask(params, s.now())
	replaced := s.put(task)

	logger.FromContext(ctx).Debug("task stored",
		"task_id", task.TaskID,
		"status", task.Status,
		"replaced", replaced)

	return task, nil
}

// GetTask implements store.TaskStore.
func (s *TaskStore) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, store.NewStoreError("task", "get", "context done", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}
	return task, nil
}

// UpdateTask implements store.TaskStore.
func (s *TaskStore) UpdateTask(
	ctx context.Context,
	taskID string,
	status domain.TaskStatus,
	resultURL string,
) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, store.NewStoreError("task", "update", "context done", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[taskID]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}

	updated := existing.WithStatus(status, resultURL, s.now())
	s.tasks[taskID] = updated
	return updated, nil
}

// UpsertTask implements store.TaskStore. The lookup and the write happen
// under one write lock, so concurrent upserts of the same ID create the task
// at most once.
func (s *TaskStore) UpsertTask(ctx context.Context, params domain.TaskParams) (domain.Task, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, false, store.NewStoreError("task", "upsert", "context done", err)
	}
	if params.TaskID == "" {
		return domain.Task{}, false, store.NewStoreError("task", "upsert", "task id is required", store.ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if existing, ok := s.tasks[params.TaskID]; ok {
		updated := existing.WithStatus(params.Status, params.ResultURL, now)
		s.tasks[params.TaskID] = updated
		return updated, false, nil
	}

	task := domain.NewTask(params, now)
	s.put(task)
	return task, true, nil
}

// ListTasks implements store.TaskStore.
func (s *TaskStore) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "context done", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks, nil
}

// DeleteTask implements store.TaskStore.
func (s *TaskStore) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, store.NewStoreError("task", "delete", "context done", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return false, nil
	}

	delete(s.tasks, taskID)
	for i, id := range s.order {
		if id == taskID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Count implements store.TaskStore.
func (s *TaskStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, store.NewStoreError("task", "count", "context done", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks), nil
}

// put stores task, appending its ID to the insertion order only when the key
// is new. It reports whether an existing entry was replaced.
// Callers must hold the write lock.
func (s *TaskStore) put(task domain.Task) bool {
	_, exists := s.tasks[task.TaskID]
	if !exists {
		s.order = append(s.order, task.TaskID)
	}
	s.tasks[task.TaskID] = task
	return exists
}
