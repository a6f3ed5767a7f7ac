package history

import (
	"context"
	"time"

	historyhttp "video-studio/internal/history/adapter/http"
	"video-studio/internal/history/adapter/persistence/memory"
	"video-studio/internal/history/config"
	"video-studio/internal/history/domain/model"
	"video-studio/internal/history/domain/repository"
	"video-studio/internal/history/usecase"
	"video-studio/internal/shared/eventbus"
	"video-studio/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// HistoryModule bundles the video record store, the history usecase and its
// HTTP surface.
type HistoryModule struct {
	repo    repository.HistoryRepository
	usecase usecase.HistoryUsecaseInterface
	handler *historyhttp.HistoryHTTPHandler
	config  *config.Config
}

// NewHistoryModule creates a new history module instance.
func NewHistoryModule(cfg *config.Config, events eventbus.EventBusInterface, log logger.Logger) (*HistoryModule, error) {
	repo := memory.NewHistoryRepository()
	historyUsecase := usecase.NewHistoryUsecase(repo, events, cfg)
	handler := historyhttp.NewHistoryHTTPHandler(historyUsecase, log.WithComponent("history"))

	return &HistoryModule{
		repo:    repo,
		usecase: historyUsecase,
		handler: handler,
		config:  cfg,
	}, nil
}

// RegisterRoutes registers history routes with the provided router.
func (hm *HistoryModule) RegisterRoutes(router fiber.Router) {
	hm.handler.SetupHistoryRoutes(router)
}

// GetUsecase returns the history usecase for external access.
func (hm *HistoryModule) GetUsecase() usecase.HistoryUsecaseInterface {
	return hm.usecase
}

// SeedDemoData inserts a few sample records so a fresh instance has
// something to show. Oldest first, so newest ends up at the front.
func (hm *HistoryModule) SeedDemoData(ctx context.Context) error {
	now := time.Now()
	samples := []model.VideoRecord{
		{
			ID:           "demo_2",
			Prompt:       "Futuristic cityscape with flying cars and neon lights at night",
			VideoURL:     "https://storage.googleapis.com/video-studio-demo/futuristic-cityscape.mp4",
			ThumbnailURL: "https://storage.googleapis.com/video-studio-demo/futuristic-cityscape.jpg",
			CreatedAt:    now.Add(-48 * time.Hour),
			Status:       model.StatusCompleted,
			Duration:     20,
			AspectRatio:  "16:9",
			Style:        "cinematic",
		},
		{
			ID:           "demo_1",
			Prompt:       "A serene mountain landscape with flowing water and morning mist",
			VideoURL:     "https://storage.googleapis.com/video-studio-demo/mountain-landscape.mp4",
			ThumbnailURL: "https://storage.googleapis.com/video-studio-demo/mountain-landscape.jpg",
			CreatedAt:    now.Add(-24 * time.Hour),
			Status:       model.StatusCompleted,
			Duration:     15,
			AspectRatio:  "16:9",
			Style:        "cinematic",
		},
		{
			ID:           "demo_3",
			Prompt:       "Underwater coral reef with colorful marine life swimming",
			VideoURL:     "",
			ThumbnailURL: "https://storage.googleapis.com/video-studio-demo/coral-reef.jpg",
			CreatedAt:    now.Add(-1 * time.Hour),
			Status:       model.StatusProcessing,
			Duration:     0,
			AspectRatio:  "16:9",
			Style:        "realistic",
		},
	}

	for _, sample := range samples {
		if _, err := hm.repo.Insert(ctx, sample); err != nil {
			return err
		}
	}
	return nil
}

// Stop performs cleanup when the module is shut down.
func (hm *HistoryModule) Stop() error {
	return nil
}
