package domain

import (
	"errors"
	"time"
)

// SessionCookie is the cookie carrying the session identifier.
const SessionCookie = "session_id"

var ErrUnauthorized = errors.New("No autorizado")
var ErrInvalidToken = errors.New("Error de token")
var ErrRoleNotAllowed = errors.New("Rol no autorizado")
var ErrSessionNotFound = errors.New("session not found")

// Session is a server-side record proving a live authenticated session. Its
// expiry (1 day) is independent of the 30-day signed token: a request is
// authenticated only when both the session and the token are valid.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at time now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
