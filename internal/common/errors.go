// Package common defines shared constants and sentinel errors used across
// the client and server layers. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Client-side actor errors. ErrActorNotAvailable means the gateway holds
	// no ready handle; it is a loading condition, not a remote fault.
	ErrActorNotAvailable = errors.New("actor not available")
	ErrUnavailable       = errors.New("server unavailable")
)
