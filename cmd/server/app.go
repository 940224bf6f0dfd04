package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/nanobanana-callback/internal/config"
	"github.com/phrazzld/nanobanana-callback/internal/events"
	"github.com/phrazzld/nanobanana-callback/internal/platform/memory"
	"github.com/phrazzld/nanobanana-callback/internal/ratelimit"
	"github.com/phrazzld/nanobanana-callback/internal/service"
	"github.com/phrazzld/nanobanana-callback/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore    store.TaskStore
	limiter      *ratelimit.Limiter
	eventEmitter *events.Dispatcher
	taskService  service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if cfg.Auth.UsesDefaultSecret() {
		logger.Warn("using the default callback secret, set CALLBACK_SECRET before exposing this service")
	}

	app.taskStore = memory.NewTaskStore()

	var err error
	app.limiter, err = ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}
	app.limiter.StartJanitor(app.limiter.Period())

	app.eventEmitter = events.NewDispatcher(logger)
	app.eventEmitter.Subscribe(events.NewClientNotifier(logger))

	app.taskService, err = service.NewTaskService(app.taskStore, app.eventEmitter, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"rate_limit_requests", app.limiter.Limit(),
		"rate_limit_window", app.limiter.Period().String())
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.limiter != nil {
		app.logger.Debug("stopping rate limiter", "tracked_clients", app.limiter.Len())
		if err := app.limiter.Close(); err != nil {
			app.logger.Debug("rate limiter already closed", "error", err)
		}
	}

	if count, err := app.taskStore.Count(context.Background()); err == nil {
		app.logger.Info("discarding in-memory tasks", "task_count", count)
	}

	app.logger.Info("Application shutdown completed")
}
