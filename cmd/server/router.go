package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/nanobanana-callback/internal/api"
	apiMiddleware "github.com/phrazzld/nanobanana-callback/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if app.config.Server.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recover(app.config.Server.IsDevelopment()))
	r.Use(apiMiddleware.SecurityHeaders)
	r.Use(apiMiddleware.CORS())
	r.Use(apiMiddleware.MaxBodySize(app.config.Server.MaxBodyBytes))

	callbackHandler := api.NewCallbackHandler(app.taskService, app.config.Auth.CallbackSecret, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	systemHandler := api.NewSystemHandler()

	// Set before any Route call so sub-routers inherit them.
	r.NotFound(systemHandler.NotFound)
	r.MethodNotAllowed(systemHandler.NotFound)

	rateLimited := apiMiddleware.RateLimit(app.limiter)

	r.Route("/api", func(r chi.Router) {
		r.With(
			apiMiddleware.CallbackSecret(app.config.Auth.CallbackSecret),
			rateLimited,
		).Post("/callback", callbackHandler.HandleCallback)

		r.Post("/nanobananaapi-callback", callbackHandler.HandleNanoBananaCallback)
		r.Get("/nanobananaapi-callback", callbackHandler.HandleNanoBananaAvailability)

		r.With(rateLimited).Get("/task/{taskId}", taskHandler.GetTask)
		r.With(rateLimited).Get("/tasks", taskHandler.ListTasks)
	})

	r.Get("/", systemHandler.Root)
	r.Get("/health", systemHandler.Health)

	return r
}
