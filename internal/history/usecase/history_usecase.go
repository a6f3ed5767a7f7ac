package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"video-studio/internal/history/config"
	"video-studio/internal/history/domain/model"
	"video-studio/internal/history/domain/repository"
	"video-studio/internal/shared/eventbus"
	"video-studio/internal/shared/utils"
)

var (
	ErrMissingFields       = errors.New("missing required fields: prompt and videoUrl")
	ErrMissingUpdateFields = errors.New("missing required fields: id and status")
	ErrVideoNotFound       = model.ErrVideoNotFound
)

// Defaults applied on Add when the caller omits a field.
const (
	defaultAspectRatio = "16:9"
	defaultStyle       = "cinematic"

	thumbnailPromptLen = 50
)

// ListFilter narrows and pages the history listing.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

// ListResult is one page of the history listing.
type ListResult struct {
	Items   []model.VideoRecord
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// AddInput carries the fields of a new history entry.
type AddInput struct {
	Prompt       string
	VideoURL     string
	ThumbnailURL string
	Duration     int
	AspectRatio  string
	Style        string
	Status       string
}

// UpdateInput carries a partial status update. Only non-empty optional
// fields overwrite existing values.
type UpdateInput struct {
	ID           string
	Status       string
	VideoURL     string
	ThumbnailURL string
}

// HistoryUsecaseInterface defines the contract for history use cases.
type HistoryUsecaseInterface interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Add(ctx context.Context, input AddInput) (*model.VideoRecord, error)
	UpdateStatus(ctx context.Context, input UpdateInput) (*model.VideoRecord, error)
	Remove(ctx context.Context, id string) (*model.VideoRecord, error)
}

// HistoryUsecase implements CRUD plus filter/paginate/sort over the video
// record store.
type HistoryUsecase struct {
	repo   repository.HistoryRepository
	events eventbus.EventBusInterface
	config *config.Config
}

// NewHistoryUsecase creates a new instance of HistoryUsecase.
func NewHistoryUsecase(
	repo repository.HistoryRepository,
	events eventbus.EventBusInterface,
	cfg *config.Config,
) *HistoryUsecase {
	return &HistoryUsecase{
		repo:   repo,
		events: events,
		config: cfg,
	}
}

// List returns one page of records sorted by creation time, newest first.
// The sort is recomputed on every call. An unrecognized status value is
// ignored rather than rejected.
func (uc *HistoryUsecase) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	records, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	if status := model.Status(filter.Status); filter.Status != "" && status.IsValid() {
		filtered := make([]model.VideoRecord, 0, len(records))
		for _, r := range records {
			if r.Status == status {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = uc.config.DefaultLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	total := len(records)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := make([]model.VideoRecord, end-start)
	copy(items, records[start:end])

	return &ListResult{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}, nil
}

// Add inserts a new record at the front of the store and enforces the
// capacity bound.
func (uc *HistoryUsecase) Add(ctx context.Context, input AddInput) (*model.VideoRecord, error) {
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" || input.VideoURL == "" {
		return nil, ErrMissingFields
	}

	status := model.Status(input.Status)
	if input.Status == "" {
		status = model.StatusCompleted
	}
	aspectRatio := input.AspectRatio
	if aspectRatio == "" {
		aspectRatio = defaultAspectRatio
	}
	style := input.Style
	if style == "" {
		style = defaultStyle
	}
	thumbnailURL := input.ThumbnailURL
	if thumbnailURL == "" {
		thumbnailURL = deriveThumbnailURL(prompt)
	}

	record := model.VideoRecord{
		ID:           utils.NewVideoID(),
		Prompt:       prompt,
		VideoURL:     input.VideoURL,
		ThumbnailURL: thumbnailURL,
		CreatedAt:    time.Now(),
		Status:       status,
		Duration:     input.Duration,
		AspectRatio:  aspectRatio,
		Style:        style,
	}

	inserted, err := uc.repo.Insert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to insert record: %w", err)
	}
	if err := uc.repo.Truncate(ctx, uc.config.Capacity); err != nil {
		return nil, fmt.Errorf("failed to enforce capacity: %w", err)
	}

	uc.publish(ctx, eventbus.EventTypeHistoryAdded, inserted)
	return &inserted, nil
}

// UpdateStatus patches the record's status and, when supplied, its URLs.
// Unsupplied optional fields are preserved.
func (uc *HistoryUsecase) UpdateStatus(ctx context.Context, input UpdateInput) (*model.VideoRecord, error) {
	if input.ID == "" || input.Status == "" {
		return nil, ErrMissingUpdateFields
	}

	updated, err := uc.repo.Update(ctx, input.ID, func(r *model.VideoRecord) {
		r.Status = model.Status(input.Status)
		if input.VideoURL != "" {
			r.VideoURL = input.VideoURL
		}
		if input.ThumbnailURL != "" {
			r.ThumbnailURL = input.ThumbnailURL
		}
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, eventbus.EventTypeHistoryUpdated, updated)
	return &updated, nil
}

// Remove deletes the record with the given ID and returns it.
func (uc *HistoryUsecase) Remove(ctx context.Context, id string) (*model.VideoRecord, error) {
	removed, err := uc.repo.Remove(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, eventbus.EventTypeHistoryRemoved, removed)
	return &removed, nil
}

func (uc *HistoryUsecase) publish(ctx context.Context, eventType string, record model.VideoRecord) {
	if uc.events == nil {
		return
	}
	uc.events.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(eventType, record, "history"))
}

// deriveThumbnailURL synthesizes a deterministic placeholder thumbnail from
// the prompt text.
func deriveThumbnailURL(prompt string) string {
	text := prompt
	if len(text) > thumbnailPromptLen {
		text = text[:thumbnailPromptLen]
	}
	return "https://placehold.co/640x360?text=" + url.QueryEscape(text)
}

// Ensure HistoryUsecase implements HistoryUsecaseInterface
var _ HistoryUsecaseInterface = (*HistoryUsecase)(nil)
