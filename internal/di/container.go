package di

import (
	"context"
	"fmt"
	"sync"

	"video-studio/internal/auth"
	authconfig "video-studio/internal/auth/config"
	"video-studio/internal/generation"
	generationconfig "video-studio/internal/generation/config"
	"video-studio/internal/history"
	historyconfig "video-studio/internal/history/config"
	"video-studio/internal/realtime"
	"video-studio/internal/shared/eventbus"
	"video-studio/internal/shared/logger"

	"go.uber.org/zap"
)

// Container wires the feature modules together and owns their lifecycle.
type Container struct {
	mu sync.Mutex

	AuthModule       *auth.AuthModule
	HistoryModule    *history.HistoryModule
	GenerationModule *generation.GenerationModule
	RealtimeModule   *realtime.RealtimeModule

	EventBus *eventbus.EventBus
	Logger   logger.Logger
}

// NewContainer creates an empty DI container.
func NewContainer(log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{
		EventBus: eventbus.NewEventBus(log.WithComponent("eventbus")),
		Logger:   log,
	}
}

// InitializeAuth initializes the authentication module.
func (c *Container) InitializeAuth(cfg *authconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	authModule, err := auth.NewAuthModule(cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	c.AuthModule = authModule
	return nil
}

// InitializeHistory initializes the history module.
func (c *Container) InitializeHistory(cfg *historyconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	historyModule, err := history.NewHistoryModule(cfg, c.EventBus, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create history module: %w", err)
	}
	c.HistoryModule = historyModule
	return nil
}

// InitializeGeneration initializes the generation gateway module.
func (c *Container) InitializeGeneration(cfg *generationconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	generationModule, err := generation.NewGenerationModule(cfg, c.EventBus, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create generation module: %w", err)
	}
	c.GenerationModule = generationModule
	return nil
}

// InitializeRealtime initializes the WebSocket event feed. It must run
// after the modules that publish events so their subscriptions land on the
// shared bus.
func (c *Container) InitializeRealtime(zapLog *zap.Logger) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.RealtimeModule = realtime.NewRealtimeModule(c.EventBus, zapLog)
	c.RealtimeModule.Start()
	return nil
}

// StartBackgroundTasks launches recurring work owned by the modules.
func (c *Container) StartBackgroundTasks(ctx context.Context) {
	if c.AuthModule != nil {
		c.AuthModule.StartSweeper(ctx)
	}
}

// HealthCheck verifies that every module is initialized.
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.AuthModule == nil {
		return fmt.Errorf("auth module not initialized")
	}
	if c.HistoryModule == nil {
		return fmt.Errorf("history module not initialized")
	}
	if c.GenerationModule == nil {
		return fmt.Errorf("generation module not initialized")
	}
	return nil
}

// Close stops every module in reverse initialization order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.RealtimeModule != nil {
		if err := c.RealtimeModule.Stop(); err != nil {
			return err
		}
	}
	if c.GenerationModule != nil {
		if err := c.GenerationModule.Stop(); err != nil {
			return err
		}
	}
	if c.HistoryModule != nil {
		if err := c.HistoryModule.Stop(); err != nil {
			return err
		}
	}
	if c.AuthModule != nil {
		if err := c.AuthModule.Stop(); err != nil {
			return err
		}
	}
	return nil
}
