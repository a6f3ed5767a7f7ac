package generation

import (
	generationhttp "video-studio/internal/generation/adapter/http"
	"video-studio/internal/generation/adapter/modelapi"
	"video-studio/internal/generation/config"
	"video-studio/internal/generation/domain/client"
	"video-studio/internal/generation/usecase"
	"video-studio/internal/shared/eventbus"
	"video-studio/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// GenerationModule bundles the upstream model client, the gateway usecase
// and its HTTP surface.
type GenerationModule struct {
	client  client.ModelClient
	usecase usecase.GenerationUsecaseInterface
	handler *generationhttp.GenerationHTTPHandler
	config  *config.Config
}

// NewGenerationModule creates a new generation module instance.
func NewGenerationModule(cfg *config.Config, events eventbus.EventBusInterface, log logger.Logger) (*GenerationModule, error) {
	modelClient := modelapi.NewHTTPModelClient(cfg, log.WithComponent("model-client"))
	generationUsecase := usecase.NewGenerationUsecase(modelClient, events, cfg, log.WithComponent("generation"))
	handler := generationhttp.NewGenerationHTTPHandler(generationUsecase, log.WithComponent("generation"))

	return &GenerationModule{
		client:  modelClient,
		usecase: generationUsecase,
		handler: handler,
		config:  cfg,
	}, nil
}

// RegisterRoutes registers generation routes with the provided router.
func (gm *GenerationModule) RegisterRoutes(router fiber.Router) {
	gm.handler.SetupGenerationRoutes(router)
}

// GetUsecase returns the generation usecase for external access.
func (gm *GenerationModule) GetUsecase() usecase.GenerationUsecaseInterface {
	return gm.usecase
}

// Stop performs cleanup when the module is shut down.
func (gm *GenerationModule) Stop() error {
	return nil
}
