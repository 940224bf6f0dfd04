package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefaultLogger(t *testing.T) *strings.Builder {
	t.Helper()
	var logBuf strings.Builder
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &logBuf
}

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "message body",
			status:       http.StatusOK,
			data:         map[string]interface{}{"message": "Callback received successfully"},
			expectedBody: `{"message":"Callback received successfully"}`,
		},
		{
			name:         "empty slice stays an array",
			status:       http.StatusOK,
			data:         []string{},
			expectedBody: `[]`,
		},
		{
			name:         "nil response",
			status:       http.StatusOK,
			data:         nil,
			expectedBody: `null`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

type unencodable struct {
	Fn func() `json:"fn"`
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	logBuf := captureDefaultLogger(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, unencodable{Fn: func() {}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logBuf.String(), "failed to encode JSON response")
}

func TestRespondWithText(t *testing.T) {
	w := httptest.NewRecorder()

	RespondWithText(w, http.StatusOK, "OK")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestRespondWithError(t *testing.T) {
	logBuf := captureDefaultLogger(t)
	ctx := context.WithValue(context.Background(), TraceIDKey, "test-trace-id")
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Route not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, w.Body.String(), "trace ID stays out of the body")
	assert.Contains(t, logBuf.String(), "trace_id=test-trace-id")
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusUnauthorized, "Invalid callback secret")

	assert.JSONEq(t, `{"error":"Invalid callback secret"}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name             string
		statusCode       int
		message          string
		err              error
		opts             []ResponseOption
		expectedLogLevel string
	}{
		{
			name:             "server error",
			statusCode:       http.StatusInternalServerError,
			message:          "Internal server error",
			err:              errors.New("store unavailable"),
			expectedLogLevel: "ERROR",
		},
		{
			name:             "client error with default log level",
			statusCode:       http.StatusBadRequest,
			message:          "taskId is required",
			err:              errors.New("taskId is required"),
			expectedLogLevel: "DEBUG",
		},
		{
			name:             "client error with elevated log level",
			statusCode:       http.StatusUnauthorized,
			message:          "Invalid callback secret",
			err:              errors.New("secret mismatch"),
			opts:             []ResponseOption{WithElevatedLogLevel()},
			expectedLogLevel: "WARN",
		},
		{
			name:             "rate limiting",
			statusCode:       http.StatusTooManyRequests,
			message:          "Too Many Requests",
			err:              errors.New("rate limit exceeded"),
			expectedLogLevel: "WARN",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logBuf := captureDefaultLogger(t)
			ctx := context.WithValue(context.Background(), TraceIDKey, "test-trace-id")
			req := httptest.NewRequest(http.MethodPost, "/api/callback", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			RespondWithErrorAndLog(w, req, tc.statusCode, tc.message, tc.err, tc.opts...)

			assert.Equal(t, tc.statusCode, w.Code)
			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, map[string]interface{}{"error": tc.message}, response)

			logOutput := logBuf.String()
			assert.Contains(t, logOutput, "trace_id=test-trace-id")
			assert.Contains(t, logOutput, "level="+tc.expectedLogLevel)
			assert.Contains(t, logOutput, "error_type=")
		})
	}
}

func TestRespondWithErrorAndLogUsesRequestLogger(t *testing.T) {
	buf, reqLogger, cleanup := logger.SetupTestLogger(t, &slog.HandlerOptions{Level: slog.LevelDebug})
	defer cleanup()
	ctx := logger.WithLogger(context.Background(), reqLogger.With("trace_id", "abc123"))
	req := httptest.NewRequest(http.MethodGet, "/api/task/x", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "Internal server error",
		errors.New("failed to read postgres://user:hunter22@db/app"))

	entry, ok := buf.FindEntry("API error response")
	require.True(t, ok)
	assert.Equal(t, "abc123", entry["trace_id"])
	assert.NotContains(t, entry["error"], "hunter22")
}

func TestRespondWithErrorAndLogKeepsTraceIDOutOfBody(t *testing.T) {
	buf, reqLogger, cleanup := logger.SetupTestLogger(t, &slog.HandlerOptions{Level: slog.LevelDebug})
	defer cleanup()
	ctx := context.WithValue(context.Background(), TraceIDKey, "host/abc-000007")
	ctx = logger.WithLogger(ctx, reqLogger.With("trace_id", GetTraceID(ctx)))
	req := httptest.NewRequest(http.MethodPost, "/api/nanobananaapi-callback", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, req, http.StatusUnauthorized, "Invalid callback secret",
		errors.New("secret mismatch"), WithElevatedLogLevel())

	assert.Equal(t, `{"error":"Invalid callback secret"}`+"\n", w.Body.String())
	entry, ok := buf.FindEntry("API error response")
	require.True(t, ok)
	assert.Equal(t, "host/abc-000007", entry["trace_id"])
}
