package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/nanobanana-callback/internal/domain"
)

// Event types emitted by the task service.
const (
	TypeTaskCreated = "task.created"
	TypeTaskUpdated = "task.updated"
)

// TaskEvent reports that a callback created or updated a task.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is TypeTaskCreated or TypeTaskUpdated
	Type string `json:"type"`

	// Source names the callback surface that produced the change
	Source string `json:"source"`

	TaskID    string            `json:"task_id"`
	Status    domain.TaskStatus `json:"status"`
	ResultURL string            `json:"result_url,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskEvent creates a TaskEvent describing task.
func NewTaskEvent(eventType, source string, task domain.Task) *TaskEvent {
	return &TaskEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Source:    source,
		TaskID:    task.TaskID,
		Status:    task.Status,
		ResultURL: task.ResultURL,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
