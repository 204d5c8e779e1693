package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means no usable response was received (connectivity loss,
	// timeout). Refresh is never attempted in this case.
	ErrUnavailable = errors.New("server unavailable")

	// ErrSessionExpired means a token refresh failed terminally; the session
	// is over and the user has to sign in again.
	ErrSessionExpired = errors.New("session expired")
)

// CredentialError is a rejected login, registration or password change. The
// server-provided message is surfaced verbatim; it never triggers the refresh
// flow.
type CredentialError struct {
	Message string
}

func (e *CredentialError) Error() string {
	return e.Message
}

// APIError is any other non-2xx response, carrying the server's error message
// when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
