package auth

import (
	"context"
	"time"

	authhttp "video-studio/internal/auth/adapter/http"
	"video-studio/internal/auth/adapter/persistence/memory"
	"video-studio/internal/auth/adapter/persistence/redisdb"
	"video-studio/internal/auth/config"
	"video-studio/internal/auth/domain/model"
	"video-studio/internal/auth/domain/repository"
	"video-studio/internal/auth/usecase"
	"video-studio/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// AuthModule bundles the session table, the auth usecase and its HTTP
// surface.
type AuthModule struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	usecase  usecase.AuthUsecaseInterface
	handler  *authhttp.AuthHTTPHandler
	sweeper  *usecase.SessionSweeper
	config   *config.Config
	log      logger.Logger
}

// NewAuthModule creates a new authentication module instance. The session
// table backend is chosen by configuration; users always live in memory.
func NewAuthModule(cfg *config.Config, log logger.Logger) (*AuthModule, error) {
	users := memory.NewUserRepository()

	var sessions repository.SessionRepository
	if cfg.SessionStore == config.StoreRedis {
		client := redisdb.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		sessions = redisdb.NewSessionRepository(client, log)
		log.Infof("Session table backed by Redis at %s", cfg.RedisAddr)
	} else {
		sessions = memory.NewSessionRepository()
	}

	authUsecase := usecase.NewAuthUsecase(users, sessions, cfg)
	handler := authhttp.NewAuthHTTPHandler(authUsecase, log.WithComponent("auth"))
	sweeper := usecase.NewSessionSweeper(authUsecase, cfg.SweepInterval, log.WithComponent("session-sweeper"))

	return &AuthModule{
		users:    users,
		sessions: sessions,
		usecase:  authUsecase,
		handler:  handler,
		sweeper:  sweeper,
		config:   cfg,
		log:      log,
	}, nil
}

// RegisterRoutes registers authentication routes with the provided router.
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupAuthRoutes(router)
}

// StartSweeper launches the periodic session sweep.
func (am *AuthModule) StartSweeper(ctx context.Context) {
	am.sweeper.Start(ctx)
}

// GetUsecase returns the auth usecase for external access.
func (am *AuthModule) GetUsecase() usecase.AuthUsecaseInterface {
	return am.usecase
}

// SeedDemoData inserts the demo account used by the UI walkthrough.
func (am *AuthModule) SeedDemoData(ctx context.Context) error {
	return am.users.CreateUser(ctx, &model.User{
		ID:          "demo_user_1",
		Email:       "demo@example.com",
		DisplayName: "Demo User",
		CreatedAt:   time.Now(),
	})
}

// Stop halts background work owned by the module.
func (am *AuthModule) Stop() error {
	am.sweeper.Stop()
	return nil
}
