package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/nanobanana-callback/internal/api/shared"
	"github.com/phrazzld/nanobanana-callback/internal/domain"
	"github.com/phrazzld/nanobanana-callback/internal/ratelimit"
	"github.com/phrazzld/nanobanana-callback/internal/service"
	"github.com/phrazzld/nanobanana-callback/internal/store"
)

// Client-facing messages.
const (
	MsgTaskNotFound          = "Task not found"
	MsgRouteNotFound         = "Route not found"
	MsgTooManyRequests       = "Too Many Requests"
	MsgInvalidRequestFormat  = "Invalid request format"
	MsgRequestTooLarge       = "Request body too large"
	MsgInternalServerError   = "Internal server error"
	MsgUnauthorized          = "Unauthorized"
	MsgInvalidCallbackSecret = "Invalid callback secret"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrMalformedBody):
		return http.StatusBadRequest

	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, ratelimit.ErrLimitExceeded):
		return http.StatusTooManyRequests

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternalServerError
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, shared.ErrMalformedBody),
		errors.Is(err, domain.ErrInvalidFormat):
		return MsgInvalidRequestFormat

	case errors.Is(err, shared.ErrBodyTooLarge):
		return MsgRequestTooLarge

	case errors.Is(err, domain.ErrUnauthorized):
		return MsgUnauthorized

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return MsgTaskNotFound

	case errors.Is(err, ratelimit.ErrLimitExceeded):
		return MsgTooManyRequests

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"

	default:
		return MsgInternalServerError
	}
}

// HandleAPIError maps err to a status code and safe message and writes the
// error response. defaultMsg, when set, replaces the message of 5xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if defaultMsg != "" && status >= http.StatusInternalServerError {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
