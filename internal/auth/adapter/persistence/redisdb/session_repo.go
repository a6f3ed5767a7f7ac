package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"video-studio/internal/auth/domain/model"
	"video-studio/internal/auth/domain/repository"
	apperrors "video-studio/internal/shared/errors"
	"video-studio/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionRepository is a Redis-backed session table. Sessions are stored as
// JSON values with a TTL matching their expiry, so Redis evicts them on its
// own; the periodic sweep becomes a no-op with this backend.
type SessionRepository struct {
	client *redis.Client
	log    logger.Logger
}

// NewSessionRepository creates a Redis-backed session repository.
func NewSessionRepository(client *redis.Client, log logger.Logger) *SessionRepository {
	return &SessionRepository{
		client: client,
		log:    log,
	}
}

// NewClient creates a Redis client for the session table.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// CreateSession stores the session with a TTL derived from its expiry.
func (r *SessionRepository) CreateSession(ctx context.Context, session *model.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		// Already expired; nothing to store.
		return nil
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+session.Token, payload, ttl).Err(); err != nil {
		r.log.Errorf("Failed to store session in Redis: %v", err)
		return apperrors.NewInternalError("failed to store session").
			WithCause(err).WithComponent("session-redis")
	}
	return nil
}

// GetSession returns the session for the given token.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (*model.Session, error) {
	payload, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		r.log.Errorf("Failed to read session from Redis: %v", err)
		return nil, apperrors.NewInternalError("failed to read session").
			WithCause(err).WithComponent("session-redis")
	}

	var session model.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes the session for the given token. Idempotent.
func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		r.log.Errorf("Failed to delete session from Redis: %v", err)
		return apperrors.NewInternalError("failed to delete session").
			WithCause(err).WithComponent("session-redis")
	}
	return nil
}

// DeleteExpiredSessions is a no-op for Redis; key TTLs handle expiry.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
