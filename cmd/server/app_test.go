package main

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/nanobanana-callback/internal/config"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplicationWarnsOnDefaultSecret(t *testing.T) {
	logs, l, cleanup := logger.SetupTestLogger(t, nil)
	defer cleanup()

	cfg := testConfig()
	cfg.Auth.CallbackSecret = config.DefaultCallbackSecret

	app, err := newApplication(cfg, l)
	require.NoError(t, err)
	defer app.cleanup()

	logger.AssertLogContains(t, logs, "using the default callback secret")
}

func TestNewApplicationLogsRateLimiterState(t *testing.T) {
	logs, l, cleanup := logger.SetupTestLogger(t, nil)
	defer cleanup()

	cfg := testConfig()
	cfg.RateLimit.Requests = 7
	cfg.RateLimit.Window = 30 * time.Second

	app, err := newApplication(cfg, l)
	require.NoError(t, err)

	entry, ok := logs.FindEntry("Application initialized successfully")
	require.True(t, ok)
	assert.Equal(t, float64(7), entry["rate_limit_requests"])
	assert.Equal(t, "30s", entry["rate_limit_window"])

	app.limiter.Allow("192.0.2.1")
	app.limiter.Allow("192.0.2.2")
	app.cleanup()

	entry, ok = logs.FindEntry("stopping rate limiter")
	require.True(t, ok)
	assert.Equal(t, float64(2), entry["tracked_clients"])
}

func TestNewApplicationRejectsInvalidRateLimit(t *testing.T) {
	_, l, cleanup := logger.SetupTestLogger(t, nil)
	defer cleanup()

	cfg := testConfig()
	cfg.RateLimit.Requests = 0

	_, err := newApplication(cfg, l)
	assert.Error(t, err)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	logs, l, cleanup := logger.SetupTestLogger(t, nil)
	defer cleanup()

	cfg := testConfig()
	cfg.Server.Port = 0 // any free port

	app, err := newApplication(cfg, l)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	logger.AssertLogContains(t, logs, "Application shutdown completed")
}
