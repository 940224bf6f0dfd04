package config

import "time"

// Environment names accepted for ServerConfig.Environment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// DefaultCallbackSecret is the placeholder secret used when none is configured.
// Any real deployment must override it.
const DefaultCallbackSecret = "default-callback-secret"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port"        validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level"   validate:"required,oneof=debug info warn error"`
	Environment string `mapstructure:"environment" validate:"required"`
	// TrustProxy makes the client address come from X-Forwarded-For / X-Real-IP.
	TrustProxy   bool  `mapstructure:"trust_proxy"`
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"required,gt=0"`
}

// IsDevelopment reports whether internal error details may be shown to clients.
func (c ServerConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// AuthConfig contains the shared secrets.
type AuthConfig struct {
	// APIKey is accepted for compatibility but not enforced by any route.
	APIKey         string `mapstructure:"api_key"`
	CallbackSecret string `mapstructure:"callback_secret" validate:"required"`
}

// UsesDefaultSecret reports whether the placeholder callback secret is in effect.
func (c AuthConfig) UsesDefaultSecret() bool {
	return c.CallbackSecret == DefaultCallbackSecret
}

// RateLimitConfig contains the per-client request quota.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests" validate:"required,gt=0"`
	Window   time.Duration `mapstructure:"window"   validate:"required,gt=0"`
}
