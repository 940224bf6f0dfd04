package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/nanobanana-callback/internal/domain"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventHandler records the events it receives.
type MockEventHandler struct {
	HandledCount int
	LastEvent    *TaskEvent
	HandlerError error
}

// HandleEvent implements EventHandler.
func (m *MockEventHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	m.HandledCount++
	m.LastEvent = event
	return m.HandlerError
}

func testTask() domain.Task {
	return domain.Task{TaskID: "abc", Status: domain.TaskStatusCompleted, ResultURL: "https://x/y.png"}
}

func TestNewTaskEvent(t *testing.T) {
	event := NewTaskEvent(TypeTaskCreated, "callback", testTask())

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, TypeTaskCreated, event.Type)
	assert.Equal(t, "callback", event.Source)
	assert.Equal(t, "abc", event.TaskID)
	assert.Equal(t, domain.TaskStatusCompleted, event.Status)
	assert.Equal(t, "https://x/y.png", event.ResultURL)
	assert.False(t, event.CreatedAt.IsZero())

	other := NewTaskEvent(TypeTaskCreated, "callback", testTask())
	assert.NotEqual(t, event.ID, other.ID)
}

var _ EventEmitter = (*Dispatcher)(nil)

func TestDispatcher(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("no subscribers", func(t *testing.T) {
		dispatcher := NewDispatcher(log)
		event := NewTaskEvent(TypeTaskUpdated, "callback", testTask())

		assert.NoError(t, dispatcher.EmitEvent(context.Background(), event))
	})

	t.Run("every subscriber receives the event", func(t *testing.T) {
		dispatcher := NewDispatcher(log)

		first := &MockEventHandler{}
		second := &MockEventHandler{}
		dispatcher.Subscribe(first)
		dispatcher.Subscribe(second)

		event := NewTaskEvent(TypeTaskUpdated, "callback", testTask())
		require.NoError(t, dispatcher.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, first.HandledCount)
		assert.Equal(t, 1, second.HandledCount)
		assert.Same(t, event, first.LastEvent)
		assert.Same(t, event, second.LastEvent)
	})

	t.Run("failing subscriber does not stop delivery", func(t *testing.T) {
		dispatcher := NewDispatcher(log)

		failing := &MockEventHandler{HandlerError: errors.New("notify failed")}
		healthy := &MockEventHandler{}
		dispatcher.Subscribe(failing)
		dispatcher.Subscribe(healthy)

		event := NewTaskEvent(TypeTaskUpdated, "callback", testTask())
		err := dispatcher.EmitEvent(context.Background(), event)
		require.Error(t, err)
		assert.Equal(t, "notify failed", err.Error())

		assert.Equal(t, 1, failing.HandledCount)
		assert.Equal(t, 1, healthy.HandledCount)
	})
}

func TestDispatcherLogsSubscriberFailure(t *testing.T) {
	buf, l, cleanup := logger.SetupTestLogger(t, nil)
	defer cleanup()

	dispatcher := NewDispatcher(l)
	dispatcher.Subscribe(&MockEventHandler{HandlerError: errors.New("notify failed")})

	_ = dispatcher.EmitEvent(context.Background(), NewTaskEvent(TypeTaskCreated, "nanobanana", testTask()))

	entry, ok := buf.FindEntry("task event subscriber failed")
	require.True(t, ok)
	assert.Equal(t, "abc", entry["task_id"])
	assert.Equal(t, TypeTaskCreated, entry["event_type"])
	assert.Equal(t, "*events.MockEventHandler", entry["subscriber"])
	assert.Equal(t, "notify failed", entry["error"])
}

func TestClientNotifier(t *testing.T) {
	buf, log, cleanup := logger.SetupTestLogger(t, nil)
	defer cleanup()

	notifier := NewClientNotifier(log)
	err := notifier.HandleEvent(context.Background(), NewTaskEvent(TypeTaskCreated, "nanobanana", testTask()))
	require.NoError(t, err)

	entry, ok := buf.FindEntry("task processing completed, ready to notify client")
	require.True(t, ok, "notifier should log its intent")
	assert.Equal(t, "abc", entry["task_id"])
	assert.Equal(t, "completed", entry["status"])
	assert.Equal(t, true, entry["has_result_url"])
	assert.Equal(t, "nanobanana", entry["source"])
	assert.Equal(t, "client_notifier", entry["component"])
}
