package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/nanobanana-callback/internal/api/shared"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
)

// MsgInternalServerError is the body of a recovered panic outside development.
const MsgInternalServerError = "Internal server error"

// Recover turns panics into a 500 JSON response. With exposeDetails set the
// panic value replaces the message.
func Recover(exposeDetails bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err := fmt.Errorf("panic: %v", rec)
				logger.FromContextOrDefault(r.Context(), slog.Default()).Error("recovered from panic",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()))

				msg := MsgInternalServerError
				if exposeDetails {
					msg = fmt.Sprint(rec)
				}
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msg, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
