package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/nanobanana-callback/internal/api/shared"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
)

// TraceMiddleware adds a trace ID and a request-scoped logger to the request
// context and logs every incoming request. Apply it early in the chain so
// later handlers can use logger.FromContextOrDefault.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())

			log := base.With(
				slog.String("trace_id", shared.GetTraceID(ctx)),
				slog.String("ip", shared.ClientIP(r)),
			)

			log.Info("incoming request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("user_agent", r.UserAgent()))

			ctx = logger.WithLogger(ctx, log)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
