package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/nanobanana-callback/internal/api/shared"
	"github.com/phrazzld/nanobanana-callback/internal/domain"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
)

// MsgUnauthorizedCallback is returned when the callback secret is missing or wrong.
const MsgUnauthorizedCallback = "Unauthorized: Invalid callback secret"

// CallbackSecret rejects requests whose X-Callback-Secret header (or secret
// query parameter) does not match secret.
func CallbackSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(shared.CallbackSecretHeader)
			if provided == "" {
				provided = r.URL.Query().Get("secret")
			}

			if !shared.SecretMatches(provided, secret) {
				logger.FromContextOrDefault(r.Context(), slog.Default()).Warn("invalid callback secret",
					"ip", shared.ClientIP(r),
					"secret_provided", provided != "",
					"user_agent", r.UserAgent())
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgUnauthorizedCallback,
					domain.ErrUnauthorized, shared.WithElevatedLogLevel())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
