package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"video-studio/internal/auth/adapter/persistence/memory"
	"video-studio/internal/auth/config"
	"video-studio/internal/auth/domain/model"
	"video-studio/internal/auth/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUsecase(ttl time.Duration) (*usecase.AuthUsecase, *memory.UserRepository, *memory.SessionRepository) {
	users := memory.NewUserRepository()
	sessions := memory.NewSessionRepository()
	cfg := &config.Config{
		SessionTTL:    ttl,
		SweepInterval: time.Hour,
		SessionStore:  config.StoreMemory,
	}
	return usecase.NewAuthUsecase(users, sessions, cfg), users, sessions
}

func TestSignup_Success(t *testing.T) {
	uc, users, sessions := newTestUsecase(24 * time.Hour)
	ctx := context.Background()

	user, token, err := uc.Signup(ctx, "Alice@Example.com", "whatever", "  Alice  ")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.DisplayName)
	assert.True(t, strings.HasPrefix(user.ID, "user_"))
	assert.True(t, strings.HasPrefix(token, "sess_"))
	assert.Equal(t, 1, users.Len())
	assert.Equal(t, 1, sessions.Len())
}

func TestSignup_DuplicateEmailCaseInsensitive(t *testing.T) {
	uc, _, _ := newTestUsecase(24 * time.Hour)
	ctx := context.Background()

	_, _, err := uc.Signup(ctx, "alice@example.com", "pw", "Alice")
	require.NoError(t, err)

	_, _, err = uc.Signup(ctx, "ALICE@EXAMPLE.COM", "pw", "Other Alice")
	assert.ErrorIs(t, err, usecase.ErrEmailTaken)
}

func TestSignup_Validation(t *testing.T) {
	uc, _, _ := newTestUsecase(24 * time.Hour)
	ctx := context.Background()

	_, _, err := uc.Signup(ctx, "not-an-email", "pw", "Alice")
	assert.ErrorIs(t, err, usecase.ErrInvalidEmailFormat)

	_, _, err = uc.Signup(ctx, "alice@example.com", "", "Alice")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	_, _, err = uc.Signup(ctx, "alice@example.com", "pw", "   ")
	assert.ErrorIs(t, err, usecase.ErrDisplayNameRequired)
}

func TestLogin_AnyNonEmptyPasswordAccepted(t *testing.T) {
	uc, _, _ := newTestUsecase(24 * time.Hour)
	ctx := context.Background()

	_, _, err := uc.Signup(ctx, "alice@example.com", "original-password", "Alice")
	require.NoError(t, err)

	// Passwords are never stored, so any non-empty value works.
	user, token, err := uc.Login(ctx, "alice@example.com", "a completely different one")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, token)
}

func TestLogin_Failures(t *testing.T) {
	uc, _, _ := newTestUsecase(24 * time.Hour)
	ctx := context.Background()

	_, _, err := uc.Login(ctx, "unknown@example.com", "pw")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	_, _, err = uc.Login(ctx, "unknown@example.com", "")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	_, _, err = uc.Login(ctx, "no-at-sign", "pw")
	assert.ErrorIs(t, err, usecase.ErrInvalidEmailFormat)
}

func TestLogin_EachLoginIssuesFreshToken(t *testing.T) {
	uc, _, sessions := newTestUsecase(24 * time.Hour)
	ctx := context.Background()

	_, first, err := uc.Signup(ctx, "alice@example.com", "pw", "Alice")
	require.NoError(t, err)
	_, second, err := uc.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, sessions.Len())
}

func TestCheckStatus_ValidToken(t *testing.T) {
	uc, _, _ := newTestUsecase(24 * time.Hour)
	ctx := context.Background()

	created, token, err := uc.Signup(ctx, "alice@example.com", "pw", "Alice")
	require.NoError(t, err)

	user, err := uc.CheckStatus(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestCheckStatus_NoToken(t *testing.T) {
	uc, _, _ := newTestUsecase(24 * time.Hour)

	_, err := uc.CheckStatus(context.Background(), "")
	assert.ErrorIs(t, err, usecase.ErrNoToken)
}

func TestCheckStatus_UnknownToken(t *testing.T) {
	uc, _, _ := newTestUsecase(24 * time.Hour)

	_, err := uc.CheckStatus(context.Background(), "sess_0_deadbeef")
	assert.ErrorIs(t, err, usecase.ErrSessionInvalid)
}

func TestCheckStatus_ExpiredSessionIsRevoked(t *testing.T) {
	// A negative TTL makes every issued session already expired.
	uc, _, sessions := newTestUsecase(-time.Minute)
	ctx := context.Background()

	_, token, err := uc.Signup(ctx, "alice@example.com", "pw", "Alice")
	require.NoError(t, err)
	require.Equal(t, 1, sessions.Len())

	_, err = uc.CheckStatus(ctx, token)
	assert.ErrorIs(t, err, usecase.ErrSessionExpired)
	assert.Equal(t, 0, sessions.Len())

	// The session was deleted, so a second check sees an unknown token.
	_, err = uc.CheckStatus(ctx, token)
	assert.ErrorIs(t, err, usecase.ErrSessionInvalid)
}

func TestCheckStatus_DanglingSessionIsRevoked(t *testing.T) {
	users := memory.NewUserRepository()
	sessions := memory.NewSessionRepository()
	cfg := &config.Config{SessionTTL: 24 * time.Hour, SweepInterval: time.Hour, SessionStore: config.StoreMemory}
	uc := usecase.NewAuthUsecase(users, sessions, cfg)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, sessions.CreateSession(ctx, &model.Session{
		Token:     "sess_1_orphan",
		UserID:    "user_1_gone",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))

	_, err := uc.CheckStatus(ctx, "sess_1_orphan")
	assert.ErrorIs(t, err, usecase.ErrUserMissing)
	assert.Equal(t, 0, sessions.Len())
}

func TestLogout_Idempotent(t *testing.T) {
	uc, _, sessions := newTestUsecase(24 * time.Hour)
	ctx := context.Background()

	_, token, err := uc.Signup(ctx, "alice@example.com", "pw", "Alice")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, token))
	assert.Equal(t, 0, sessions.Len())

	// Revoking the same token again still succeeds.
	assert.NoError(t, uc.Logout(ctx, token))

	assert.ErrorIs(t, uc.Logout(ctx, ""), usecase.ErrNoToken)
}

func TestSweepExpiredSessions(t *testing.T) {
	uc, _, sessions := newTestUsecase(24 * time.Hour)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, sessions.CreateSession(ctx, &model.Session{
		Token:     "sess_1_live",
		UserID:    "user_1",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))
	require.NoError(t, sessions.CreateSession(ctx, &model.Session{
		Token:     "sess_2_stale",
		UserID:    "user_2",
		CreatedAt: now.Add(-48 * time.Hour),
		ExpiresAt: now.Add(-24 * time.Hour),
	}))

	removed, err := uc.SweepExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, sessions.Len())

	_, err = sessions.GetSession(ctx, "sess_1_live")
	assert.NoError(t, err)
}
