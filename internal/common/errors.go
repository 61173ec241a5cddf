// Package common defines shared constants and sentinel errors used across
// client and server layers of the blog service. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Validation errors. Wrapped with field detail by the services.
	ErrInvalidInput = errors.New("invalid input")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")

	// Token lifecycle errors (subset of unauthenticated, kept distinct so
	// callers can tell an expired token from a malformed one).
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")

	// Transport-level errors surfaced by the client.
	ErrTimeout     = errors.New("request timed out")
	ErrUnavailable = errors.New("server unavailable")

	// Anything unexpected. Detail stays in server logs, never on the wire.
	ErrInternal = errors.New("internal error")
)
