package usecase

import (
	"context"
	"sync"
	"time"

	"video-studio/internal/shared/logger"
)

// SessionSweeper periodically removes expired sessions. It is an explicit
// recurring task with a lifecycle handle, started by the container and
// stopped on shutdown.
type SessionSweeper struct {
	usecase  AuthUsecaseInterface
	interval time.Duration
	log      logger.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewSessionSweeper creates a sweeper that runs at the given interval.
func NewSessionSweeper(uc AuthUsecaseInterface, interval time.Duration, log logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		usecase:  uc,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop. It returns immediately; the loop runs
// until Stop is called or the context is cancelled.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.started = true
		go s.run(ctx)
	})
}

func (s *SessionSweeper) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop halts the sweep loop and waits for it to finish. Safe to call more
// than once, and a no-op if the sweeper was never started.
func (s *SessionSweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	if s.started {
		<-s.doneCh
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	removed, err := s.usecase.SweepExpiredSessions(ctx)
	if err != nil {
		s.log.Errorf("Session sweep failed: %v", err)
		return
	}
	if removed > 0 {
		s.log.Infof("Session sweep removed %d expired sessions", removed)
	}
}
