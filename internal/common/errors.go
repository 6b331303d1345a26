// Package common contains shared constants and sentinel errors used across
// PulsePal components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation / uniqueness errors.
	ErrorValidation    = errors.New("validation error")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrorInvalidToken = errors.New("invalid token")

	// A trusted-tool operation was invoked while its shared secret
	// is not configured at all.
	ErrorNotConfigured = errors.New("not configured")
)
