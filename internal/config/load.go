package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envBindings maps configuration keys to the environment variables read for
// them. The first variable that is set wins.
var envBindings = map[string][]string{
	"server.port":           {"PORT"},
	"server.log_level":      {"LOG_LEVEL"},
	"server.environment":    {"APP_ENV", "NODE_ENV"},
	"server.trust_proxy":    {"TRUST_PROXY"},
	"server.max_body_bytes": {"MAX_BODY_BYTES"},
	"auth.api_key":          {"API_KEY"},
	"auth.callback_secret":  {"CALLBACK_SECRET"},
	"rate_limit.requests":   {"RATE_LIMIT_REQUESTS"},
	"rate_limit.window":     {"RATE_LIMIT_WINDOW"},
}

// setDefaults registers the default value of every setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.environment", EnvDevelopment)
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("server.max_body_bytes", 10<<20)
	v.SetDefault("auth.api_key", "default-api-key")
	v.SetDefault("auth.callback_secret", DefaultCallbackSecret)
	v.SetDefault("rate_limit.requests", 10)
	v.SetDefault("rate_limit.window", "60s")
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file,
// which take precedence over defaults.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with an explicit directory to search for config.yaml.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
