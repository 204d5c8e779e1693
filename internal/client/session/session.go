// Package session holds the client's authentication state: the short-lived
// access token plus the signed-in user. There is exactly one Session per
// process and a single-writer discipline: only login/logout flows and the API
// client's refresh routine may mutate it.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rishank14/serenityspace-cli/internal/client/models"
)

// Session is safe for concurrent use. The refresh credential itself is not
// held here — it travels out-of-band in the HTTP client's cookie jar.
type Session struct {
	mu        sync.RWMutex
	token     string
	user      models.User
	hasUser   bool
	subject   string
	expiresAt time.Time
}

func New() *Session {
	return &Session{}
}

// SetToken stores a new access token, replacing any previous one. The token's
// claims are parsed without signature verification purely as a convenience
// (user id, expiry for logging); the server remains the authority. A token
// whose claims cannot be parsed is still stored.
func (s *Session) SetToken(token string) {
	var subject string
	var expiresAt time.Time

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if id, ok := claims["_id"].(string); ok {
			subject = id
		} else if sub, err := claims.GetSubject(); err == nil {
			subject = sub
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			expiresAt = exp.Time
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.subject = subject
	s.expiresAt = expiresAt
}

// Token returns the current access token, or "" when absent.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ClearToken drops the access token but keeps the user. Used when a refresh
// fails terminally; the caller decides what to do with the rest of the state.
func (s *Session) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.subject = ""
	s.expiresAt = time.Time{}
}

// SetUser records the signed-in user.
func (s *Session) SetUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.hasUser = true
}

// User returns the signed-in user, if any.
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.hasUser
}

// UserID returns the signed-in user's id, falling back to the token's subject
// claim when the user object has not been fetched yet.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hasUser {
		return s.user.ID
	}
	return s.subject
}

// ExpiresAt returns the token expiry claim, when one was present.
func (s *Session) ExpiresAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt, !s.expiresAt.IsZero()
}

// Active reports whether an access token is currently held.
func (s *Session) Active() bool {
	return s.Token() != ""
}

// Reset wipes the whole session (logout or terminal session expiry).
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.subject = ""
	s.expiresAt = time.Time{}
	s.user = models.User{}
	s.hasUser = false
}
