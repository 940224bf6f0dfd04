package mocks

import (
	"context"

	"github.com/phrazzld/nanobanana-callback/internal/domain"
	"github.com/phrazzld/nanobanana-callback/internal/store"
	"github.com/stretchr/testify/mock"
)

// Compile-time check to ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// TaskStore mocks the store.TaskStore interface
type TaskStore struct {
	mock.Mock
}

func (m *TaskStore) CreateTask(ctx context.Context, params domain.TaskParams) (domain.Task, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *TaskStore) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *TaskStore) UpdateTask(
	ctx context.Context,
	taskID string,
	status domain.TaskStatus,
	resultURL string,
) (domain.Task, error) {
	args := m.Called(ctx, taskID, status, resultURL)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *TaskStore) UpsertTask(ctx context.Context, params domain.TaskParams) (domain.Task, bool, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.Task), args.Bool(1), args.Error(2)
}

func (m *TaskStore) ListTasks(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *TaskStore) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	args := m.Called(ctx, taskID)
	return args.Bool(0), args.Error(1)
}

func (m *TaskStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
