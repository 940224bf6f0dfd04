// Package main implements the entry point for the callback receiver, which
// records image generation task progress reported by the Nano Banana API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/nanobanana-callback/internal/config"
	"github.com/phrazzld/nanobanana-callback/internal/platform/logger"
)

func main() {
	cfg, l, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(cfg, l)
	if err != nil {
		l.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(context.Background()); err != nil {
		l.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"trust_proxy", cfg.Server.TrustProxy,
		"rate_limit_requests", cfg.RateLimit.Requests,
		"rate_limit_window", cfg.RateLimit.Window.String())

	return cfg, l, nil
}
