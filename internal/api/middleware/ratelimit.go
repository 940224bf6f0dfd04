package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/phrazzld/nanobanana-callback/internal/api/shared"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
	"github.com/phrazzld/nanobanana-callback/internal/ratelimit"
)

// MsgTooManyRequests is the body of a rejected request.
const MsgTooManyRequests = "Too Many Requests"

// RateLimit admits at most the limiter's quota of requests per client
// address per window. Every response carries X-RateLimit-* headers; rejected
// requests also get Retry-After.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := shared.ClientIP(r)
			decision := limiter.Allow(ip)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				retryAfter := int(math.Ceil(decision.RetryAfter(limiter.Now()).Seconds()))
				h.Set("Retry-After", strconv.Itoa(retryAfter))

				logger.FromContextOrDefault(r.Context(), slog.Default()).Warn("rate limit exceeded",
					"ip", ip,
					"method", r.Method,
					"path", r.URL.Path,
					"retry_after_seconds", retryAfter)
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, MsgTooManyRequests,
					ratelimit.ErrLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
