package memory

import (
	"context"
	"sync"
	"time"

	"video-studio/internal/auth/domain/model"
	"video-studio/internal/auth/domain/repository"
)

// SessionRepository is an in-memory session table mapping tokens to
// sessions. A single coarse lock guards the map.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// NewSessionRepository creates an empty in-memory session table.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*model.Session),
	}
}

// CreateSession stores a session under its token.
func (r *SessionRepository) CreateSession(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = session
	return nil
}

// GetSession returns the session for the given token. Expiry is the
// caller's concern; expired sessions are returned as stored.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

// DeleteSession removes the session for the given token. Idempotent.
func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

// DeleteExpiredSessions removes every session whose ExpiresAt <= now.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, session := range r.sessions {
		if !session.ExpiresAt.After(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
