package model

import "time"

// Session is an opaque bearer credential identifying an authenticated actor.
// It references a User by ID but does not own it.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has expired at the given instant.
// A session is expired strictly after its expiry time, matching validation
// semantics; the periodic sweep uses ExpiresAt <= now instead.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
