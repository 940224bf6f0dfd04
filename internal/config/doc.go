// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml file and environment variables.
// It provides type-safe access to the settings the callback receiver needs.
package config
