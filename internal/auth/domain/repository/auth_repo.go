package repository

import (
	"context"
	"time"

	"video-studio/internal/auth/domain/model"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetUserByEmail matches the email case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// SessionRepository defines persistence operations for the session table.
// Implementations exist for process memory (default) and Redis.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	// DeleteSession is idempotent; deleting a missing token is not an error.
	DeleteSession(ctx context.Context, token string) error
	// DeleteExpiredSessions removes every session with ExpiresAt <= now and
	// returns how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}
