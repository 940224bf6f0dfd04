// Package middleware holds the HTTP middleware of the callback receiver:
// request tracing and logging, the callback secret check, per-client rate
// limiting, panic recovery, body size limits, and transport hardening.
package middleware
