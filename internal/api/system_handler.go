package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/nanobanana-callback/internal/api/shared"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
)

// ServiceName is reported at the service root.
const ServiceName = "Petogether Callback Backend API"

// SystemHandler serves liveness endpoints and the JSON 404.
type SystemHandler struct {
	now func() time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{now: time.Now}
}

// Root handles GET /
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Message:   ServiceName,
		Status:    "running",
		Timestamp: h.now().UTC(),
	})
}

// Health handles GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, http.StatusOK, "OK")
}

// NotFound answers unmatched routes and methods.
func (h *SystemHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	logger.FromContextOrDefault(r.Context(), slog.Default()).Warn("route not found",
		"method", r.Method,
		"path", r.URL.Path,
		"ip", shared.ClientIP(r))
	shared.RespondWithError(w, r, http.StatusNotFound, MsgRouteNotFound)
}
