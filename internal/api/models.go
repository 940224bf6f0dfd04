package api

import (
	"encoding/json"
	"time"

	"github.com/phrazzld/nanobanana-callback/internal/domain"
)

// CallbackRequest is the body of POST /api/callback.
type CallbackRequest struct {
	TaskID    string `json:"taskId"    validate:"required"`
	Status    string `json:"status"`
	ResultURL string `json:"resultUrl"`
}

// NanoBananaCallbackRequest is the body sent by the Nano Banana image API.
type NanoBananaCallbackRequest struct {
	TaskID         string          `json:"taskId"         validate:"required"`
	Status         string          `json:"status"`
	Result         json.RawMessage `json:"result"`
	CallbackSecret string          `json:"callbackSecret"`
}

// NanoBananaResult holds the generated artifact location.
type NanoBananaResult struct {
	URL string `json:"url"`
}

// ResultURL returns result.url, or "" when the result is absent or is not an
// object with a string url.
func (r NanoBananaCallbackRequest) ResultURL() string {
	if len(r.Result) == 0 {
		return ""
	}
	var result NanoBananaResult
	if err := json.Unmarshal(r.Result, &result); err != nil {
		return ""
	}
	return result.URL
}

// TaskResponse is the wire form of a task. An absent result is null.
type TaskResponse struct {
	TaskID    string    `json:"taskId"`
	Status    string    `json:"status"`
	ResultURL *string   `json:"resultUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CallbackResponse acknowledges a generic callback.
type CallbackResponse struct {
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// AvailabilityResponse answers availability checks.
type AvailabilityResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusResponse is served at the service root.
type StatusResponse struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func taskToResponse(task domain.Task) TaskResponse {
	resp := TaskResponse{
		TaskID:    task.TaskID,
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
	if task.HasResult() {
		url := task.ResultURL
		resp.ResultURL = &url
	}
	return resp
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
