package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Dispatcher fans task events out to subscribed handlers in process.
// Handlers run synchronously, in subscription order, on the caller's goroutine.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []EventHandler // replaced, never mutated, on Subscribe
	logger   *slog.Logger
}

// NewDispatcher returns a Dispatcher with no subscribers.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger.With("component", "task_events")}
}

// Subscribe adds handler to the end of the delivery order.
func (d *Dispatcher) Subscribe(handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := make([]EventHandler, len(d.handlers), len(d.handlers)+1)
	copy(next, d.handlers)
	d.handlers = append(next, handler)

	d.logger.Debug("task event subscriber added",
		"subscriber", fmt.Sprintf("%T", handler),
		"subscribers", len(d.handlers))
}

// EmitEvent delivers event to every subscriber. A failing subscriber does not
// stop delivery to the rest; the first failure is returned.
func (d *Dispatcher) EmitEvent(ctx context.Context, event *TaskEvent) error {
	d.mu.RLock()
	subscribers := d.handlers
	d.mu.RUnlock()

	log := d.logger.With(
		"event_id", event.ID,
		"event_type", event.Type,
		"task_id", event.TaskID)

	if len(subscribers) == 0 {
		log.Debug("task event dropped, nobody subscribed")
		return nil
	}
	log.Debug("dispatching task event", "subscribers", len(subscribers))

	var firstErr error
	for _, handler := range subscribers {
		err := handler.HandleEvent(ctx, event)
		if err == nil {
			continue
		}
		log.Error("task event subscriber failed",
			"subscriber", fmt.Sprintf("%T", handler),
			"status", event.Status,
			"error", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
