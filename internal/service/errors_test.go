package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/nanobanana-callback/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestTaskServiceError(t *testing.T) {
	cause := errors.New("store unavailable")

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			err:      &TaskServiceError{Operation: "get_task", Message: "failed to retrieve task", Err: cause},
			expected: "task service get_task failed: failed to retrieve task: store unavailable",
		},
		{
			name:     "without underlying error",
			err:      &TaskServiceError{Operation: "list_tasks", Message: "failed to list tasks"},
			expected: "task service list_tasks failed: failed to list tasks",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}

	wrapped := NewTaskServiceError("get_task", "failed", cause)
	assert.ErrorIs(t, wrapped, cause)
	var serviceErr *TaskServiceError
	assert.ErrorAs(t, wrapped, &serviceErr)
}

func TestNotFoundIsNotWrapped(t *testing.T) {
	err := NewTaskServiceError("get_task", "failed", fmt.Errorf("lookup: %w", store.ErrTaskNotFound))

	assert.Same(t, ErrTaskNotFound, err)
}
