// Package common defines shared constants and sentinel errors used across
// the SerenitySpace client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors raised before a request leaves the client.
	ErrDeliverAtNotFuture = errors.New("deliver time must be at least 1 minute in the future")
	ErrInvalidMood        = errors.New("invalid mood")
	ErrInvalidEmotion     = errors.New("invalid emotion")
	ErrInvalidVisibility  = errors.New("invalid visibility")

	// ErrNotSignedIn is returned by operations that require a resolved user
	// identity when no session is active.
	ErrNotSignedIn = errors.New("not signed in")
)
