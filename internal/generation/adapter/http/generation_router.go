package http

import (
	"errors"
	"fmt"

	"video-studio/internal/generation/domain/model"
	"video-studio/internal/generation/usecase"
	"video-studio/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// GenerationHTTPHandler handles HTTP requests for video generation.
type GenerationHTTPHandler struct {
	usecase usecase.GenerationUsecaseInterface
	log     logger.Logger
}

// NewGenerationHTTPHandler creates a new generation HTTP handler.
func NewGenerationHTTPHandler(uc usecase.GenerationUsecaseInterface, log logger.Logger) *GenerationHTTPHandler {
	return &GenerationHTTPHandler{
		usecase: uc,
		log:     log,
	}
}

// SetupGenerationRoutes registers the generation endpoints.
func (h *GenerationHTTPHandler) SetupGenerationRoutes(router fiber.Router) {
	router.Post("/generate", h.Generate)
	router.Get("/generate", h.Describe)
}

// Generate submits a prompt to the upstream model and returns the video URL.
func (h *GenerationHTTPHandler) Generate(c *fiber.Ctx) error {
	var req model.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	result, err := h.usecase.Generate(c.Context(), req)
	if err != nil {
		var upstreamErr *usecase.UpstreamError
		switch {
		case errors.Is(err, usecase.ErrInvalidPrompt):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid or missing prompt",
			})
		case errors.Is(err, usecase.ErrInvalidDuration):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Duration must be between 5 and 60 seconds",
			})
		case errors.Is(err, usecase.ErrTimedOut):
			return c.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{
				"success": false,
				"error":   "Video generation timed out. Please try again with a shorter duration or simpler prompt.",
			})
		case errors.As(err, &upstreamErr):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"error":   fmt.Sprintf("AI service error: %d. Please try again.", upstreamErr.StatusCode),
			})
		case errors.Is(err, usecase.ErrUpstreamFormat):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid response from AI service",
			})
		default:
			h.log.Errorf("Video generation failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Internal server error. Please try again later.",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"id":       result.ID,
		"videoUrl": result.VideoURL,
		"source":   result.Source,
		"metadata": result.Metadata,
	})
}

// Describe returns a static service descriptor with no side effects.
func (h *GenerationHTTPHandler) Describe(c *fiber.Ctx) error {
	return c.JSON(h.usecase.Describe())
}
