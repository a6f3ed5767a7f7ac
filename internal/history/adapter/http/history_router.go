package http

import (
	"errors"

	"video-studio/internal/history/usecase"
	"video-studio/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// HistoryHTTPHandler handles HTTP requests for the video history.
type HistoryHTTPHandler struct {
	usecase usecase.HistoryUsecaseInterface
	log     logger.Logger
}

// NewHistoryHTTPHandler creates a new history HTTP handler.
func NewHistoryHTTPHandler(uc usecase.HistoryUsecaseInterface, log logger.Logger) *HistoryHTTPHandler {
	return &HistoryHTTPHandler{
		usecase: uc,
		log:     log,
	}
}

// AddRequest is the body of POST /history.
type AddRequest struct {
	Prompt       string `json:"prompt"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Duration     int    `json:"duration"`
	AspectRatio  string `json:"aspectRatio"`
	Style        string `json:"style"`
	Status       string `json:"status"`
}

// UpdateRequest is the body of PUT /history.
type UpdateRequest struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// SetupHistoryRoutes registers the history endpoints.
func (h *HistoryHTTPHandler) SetupHistoryRoutes(router fiber.Router) {
	router.Get("/history", h.List)
	router.Post("/history", h.Add)
	router.Put("/history", h.Update)
	router.Delete("/history", h.Remove)
}

// List returns one page of history records, newest first.
func (h *HistoryHTTPHandler) List(c *fiber.Ctx) error {
	filter := usecase.ListFilter{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}

	result, err := h.usecase.List(c.Context(), filter)
	if err != nil {
		h.log.Errorf("Failed to list history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch video history",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result.Items,
		"total":   result.Total,
		"limit":   result.Limit,
		"offset":  result.Offset,
		"hasMore": result.HasMore,
	})
}

// Add inserts a new record.
func (h *HistoryHTTPHandler) Add(c *fiber.Ctx) error {
	var req AddRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	record, err := h.usecase.Add(c.Context(), usecase.AddInput{
		Prompt:       req.Prompt,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
		AspectRatio:  req.AspectRatio,
		Style:        req.Style,
		Status:       req.Status,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Missing required fields: prompt and videoUrl",
			})
		}
		h.log.Errorf("Failed to add history record: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to add video to history",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    record,
	})
}

// Update patches a record's status and optionally its URLs.
func (h *HistoryHTTPHandler) Update(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	record, err := h.usecase.UpdateStatus(c.Context(), usecase.UpdateInput{
		ID:           req.ID,
		Status:       req.Status,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingUpdateFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Missing required fields: id and status",
			})
		case errors.Is(err, usecase.ErrVideoNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Video not found",
			})
		default:
			h.log.Errorf("Failed to update history record: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to update video",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    record,
	})
}

// Remove deletes the record identified by the id query parameter.
func (h *HistoryHTTPHandler) Remove(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing required parameter: id",
		})
	}

	record, err := h.usecase.Remove(c.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrVideoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Video not found",
			})
		}
		h.log.Errorf("Failed to delete history record: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete video",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Video deleted successfully",
		"data":    record,
	})
}
