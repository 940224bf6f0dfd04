package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/nanobanana-callback/internal/api/shared"
	"github.com/phrazzld/nanobanana-callback/internal/domain"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
	"github.com/phrazzld/nanobanana-callback/internal/service"
)

// Acknowledgement messages.
const (
	MsgCallbackReceived  = "Callback received successfully"
	MsgCallbackProcessed = "Callback received and processed successfully"
	MsgEndpointAvailable = "Nano Banana API callback endpoint is available, please use POST method"
)

// CallbackHandler receives task progress notifications.
type CallbackHandler struct {
	tasks     service.TaskService
	secret    string
	validator *validator.Validate
	logger    *slog.Logger
	now       func() time.Time
}

// NewCallbackHandler creates a new CallbackHandler. secret is the shared
// callback secret checked by the Nano Banana endpoint.
func NewCallbackHandler(tasks service.TaskService, secret string, logger *slog.Logger) *CallbackHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CallbackHandler{
		tasks:     tasks,
		secret:    secret,
		validator: newValidator(),
		logger:    logger.With("component", "callback_handler"),
		now:       time.Now,
	}
}

// HandleCallback handles POST /api/callback. The secret has already been
// verified by middleware.CallbackSecret.
func (h *CallbackHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CallbackRequest
	if err := shared.DecodeBody(r, &req); err != nil {
		log.Warn("failed to decode callback body", "error", err)
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("callback received",
		"task_id", req.TaskID,
		"status", req.Status,
		"result_url", req.ResultURL)

	if err := validateRequest(h.validator, req); err != nil {
		log.Warn("callback rejected", "error", err)
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.tasks.ApplyCallback(r.Context(), service.CallbackInput{
		Source:    service.SourceGenericCallback,
		TaskID:    req.TaskID,
		Status:    domain.TaskStatus(req.Status),
		ResultURL: req.ResultURL,
	})
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalServerError)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CallbackResponse{
		Message: MsgCallbackReceived,
		Task:    taskToResponse(result.Task),
	})
}

// HandleNanoBananaCallback handles POST /api/nanobananaapi-callback.
// The secret may arrive in the X-Callback-Secret header or the body. A header
// secret is checked before the body is read; the body secret is consulted
// only when the header is absent.
func (h *CallbackHandler) HandleNanoBananaCallback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	headerSecret := r.Header.Get(shared.CallbackSecretHeader)
	if headerSecret != "" && !shared.SecretMatches(headerSecret, h.secret) {
		h.rejectSecret(w, r, log, "", true)
		return
	}

	var req NanoBananaCallbackRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode nano banana callback body", "error", err)
		if headerSecret == "" {
			// The body secret cannot be read from an undecodable body.
			h.rejectSecret(w, r, log, "", false)
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("nano banana callback received",
		"task_id", req.TaskID,
		"status", req.Status,
		"result_url", req.ResultURL())

	if headerSecret == "" && !shared.SecretMatches(req.CallbackSecret, h.secret) {
		h.rejectSecret(w, r, log, req.TaskID, req.CallbackSecret != "")
		return
	}

	if err := validateRequest(h.validator, req); err != nil {
		log.Warn("nano banana callback rejected", "error", err)
		HandleAPIError(w, r, err, "")
		return
	}

	_, err := h.tasks.ApplyCallback(r.Context(), service.CallbackInput{
		Source:    service.SourceNanoBananaCallback,
		TaskID:    req.TaskID,
		Status:    domain.TaskStatus(req.Status),
		ResultURL: req.ResultURL(),
	})
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalServerError)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: MsgCallbackProcessed})
}

func (h *CallbackHandler) rejectSecret(w http.ResponseWriter, r *http.Request, log *slog.Logger, taskID string, provided bool) {
	log.Warn("invalid callback secret",
		"task_id", taskID,
		"secret_provided", provided)
	shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgInvalidCallbackSecret,
		domain.ErrUnauthorized, shared.WithElevatedLogLevel())
}

// HandleNanoBananaAvailability handles GET /api/nanobananaapi-callback.
func (h *CallbackHandler) HandleNanoBananaAvailability(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, AvailabilityResponse{
		Message:   MsgEndpointAvailable,
		Timestamp: h.now().UTC(),
	})
}
