package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/nanobanana-callback/internal/domain"
	"github.com/phrazzld/nanobanana-callback/internal/mocks"
	"github.com/phrazzld/nanobanana-callback/internal/service"
	"github.com/stretchr/testify/assert"
)

func newTaskRouter(tasks service.TaskService) http.Handler {
	h := NewTaskHandler(tasks, nil)
	r := chi.NewRouter()
	r.Get("/api/task/{taskId}", h.GetTask)
	r.Get("/api/tasks", h.ListTasks)
	return r
}

func TestTaskHandler_GetTask(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name           string
		getErr         error
		task           domain.Task
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "task without result has null resultUrl",
			task: domain.Task{
				TaskID:    "abc",
				Status:    domain.TaskStatusProcessing,
				CreatedAt: created,
				UpdatedAt: created,
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"taskId":"abc","status":"processing","resultUrl":null,` +
				`"createdAt":"2025-01-02T03:04:05Z","updatedAt":"2025-01-02T03:04:05Z"}`,
		},
		{
			name:           "not found",
			getErr:         service.ErrTaskNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Task not found"}`,
		},
		{
			name:           "unexpected failure",
			getErr:         errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var requested string
			tasks := &mocks.TaskService{
				GetTaskFn: func(ctx context.Context, taskID string) (domain.Task, error) {
					requested = taskID
					return tc.task, tc.getErr
				},
			}

			w := httptest.NewRecorder()
			newTaskRouter(tasks).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/task/abc", nil))

			assert.Equal(t, "abc", requested)
			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Run("empty store yields empty array", func(t *testing.T) {
		tasks := &mocks.TaskService{
			ListTasksFn: func(ctx context.Context) ([]domain.Task, error) { return nil, nil },
		}

		w := httptest.NewRecorder()
		newTaskRouter(tasks).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("tasks are returned in order", func(t *testing.T) {
		tasks := &mocks.TaskService{
			ListTasksFn: func(ctx context.Context) ([]domain.Task, error) {
				return []domain.Task{
					{TaskID: "one", Status: domain.TaskStatusCompleted, ResultURL: "https://x/1.png"},
					{TaskID: "two", Status: domain.TaskStatusFailed},
				}, nil
			},
		}

		w := httptest.NewRecorder()
		newTaskRouter(tasks).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[
			{"taskId":"one","status":"completed","resultUrl":"https://x/1.png",
			 "createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"},
			{"taskId":"two","status":"failed","resultUrl":null,
			 "createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}
		]`, w.Body.String())
	})

	t.Run("failure", func(t *testing.T) {
		tasks := &mocks.TaskService{
			ListTasksFn: func(ctx context.Context) ([]domain.Task, error) { return nil, errors.New("boom") },
		}

		w := httptest.NewRecorder()
		newTaskRouter(tasks).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
