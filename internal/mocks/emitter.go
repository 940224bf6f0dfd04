package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/nanobanana-callback/internal/events"
)

var _ events.EventEmitter = (*EventEmitter)(nil)

// EventEmitter records emitted events and optionally fails.
type EventEmitter struct {
	mu     sync.Mutex
	Events []*events.TaskEvent
	Err    error
}

// EmitEvent implements events.EventEmitter
func (m *EventEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return m.Err
}

// Emitted returns a copy of the recorded events.
func (m *EventEmitter) Emitted() []*events.TaskEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.TaskEvent, len(m.Events))
	copy(out, m.Events)
	return out
}
