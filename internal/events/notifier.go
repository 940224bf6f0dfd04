package events

import (
	"context"
	"log/slog"
)

// ClientNotifier records that a finished task is ready to be pushed to the
// client. Nothing is delivered; the log line is the whole effect.
type ClientNotifier struct {
	logger *slog.Logger
}

// NewClientNotifier creates a ClientNotifier.
func NewClientNotifier(logger *slog.Logger) *ClientNotifier {
	return &ClientNotifier{
		logger: logger.With("component", "client_notifier"),
	}
}

// HandleEvent implements EventHandler.
func (n *ClientNotifier) HandleEvent(ctx context.Context, event *TaskEvent) error {
	n.logger.InfoContext(ctx, "task processing completed, ready to notify client",
		"task_id", event.TaskID,
		"status", event.Status,
		"has_result_url", event.ResultURL != "",
		"event_type", event.Type,
		"source", event.Source)
	return nil
}
