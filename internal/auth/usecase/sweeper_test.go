package usecase_test

import (
	"context"
	"testing"
	"time"

	"video-studio/internal/auth/domain/model"
	"video-studio/internal/auth/usecase"
	"video-studio/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSweeper_RemovesExpiredSessions(t *testing.T) {
	uc, _, sessions := newTestUsecase(24 * time.Hour)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, sessions.CreateSession(ctx, &model.Session{
		Token:     "sess_1_stale",
		UserID:    "user_1",
		CreatedAt: now.Add(-48 * time.Hour),
		ExpiresAt: now.Add(-24 * time.Hour),
	}))
	require.NoError(t, sessions.CreateSession(ctx, &model.Session{
		Token:     "sess_2_live",
		UserID:    "user_2",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))

	sweeper := usecase.NewSessionSweeper(uc, 10*time.Millisecond, logger.NewLogger())
	sweeper.Start(ctx)

	assert.Eventually(t, func() bool {
		return sessions.Len() == 1
	}, time.Second, 10*time.Millisecond)

	sweeper.Stop()

	_, err := sessions.GetSession(ctx, "sess_2_live")
	assert.NoError(t, err)
}

func TestSessionSweeper_StopWithoutStart(t *testing.T) {
	uc, _, _ := newTestUsecase(24 * time.Hour)

	sweeper := usecase.NewSessionSweeper(uc, time.Hour, logger.NewLogger())
	// Must not block waiting for a loop that never ran.
	sweeper.Stop()
}

func TestSessionSweeper_StopIsIdempotent(t *testing.T) {
	uc, _, _ := newTestUsecase(24 * time.Hour)

	sweeper := usecase.NewSessionSweeper(uc, time.Hour, logger.NewLogger())
	sweeper.Start(context.Background())

	sweeper.Stop()
	sweeper.Stop()
}

// mockSweepTarget counts sweep invocations without real repositories.
type mockSweepTarget struct {
	usecase.AuthUsecaseInterface
	calls chan struct{}
}

func (m *mockSweepTarget) SweepExpiredSessions(ctx context.Context) (int, error) {
	select {
	case m.calls <- struct{}{}:
	default:
	}
	return 0, nil
}

func TestSessionSweeper_StopsOnContextCancel(t *testing.T) {
	target := &mockSweepTarget{calls: make(chan struct{}, 1)}
	sweeper := usecase.NewSessionSweeper(target, 5*time.Millisecond, logger.NewLogger())

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)

	select {
	case <-target.calls:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ticked")
	}

	cancel()
	// Stop must return even though the loop already exited via the context.
	sweeper.Stop()
}
