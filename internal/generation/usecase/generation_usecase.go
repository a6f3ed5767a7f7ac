package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"video-studio/internal/generation/config"
	"video-studio/internal/generation/domain/client"
	"video-studio/internal/generation/domain/model"
	"video-studio/internal/shared/eventbus"
	"video-studio/internal/shared/logger"
	"video-studio/internal/shared/utils"
)

var (
	ErrInvalidPrompt   = errors.New("invalid or missing prompt")
	ErrInvalidDuration = errors.New("duration must be between 5 and 60 seconds")
	ErrTimedOut        = errors.New("video generation timed out")
	ErrUpstreamFormat  = errors.New("invalid response from AI service")
)

// UpstreamError wraps a non-2xx upstream reply with its status code.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI service error: %d", e.StatusCode)
}

// Duration bounds in seconds, inclusive.
const (
	MinDuration = 5
	MaxDuration = 60
)

// videoURLRegex matches the first direct video link in the upstream reply.
var videoURLRegex = regexp.MustCompile(`(?i)(https?://\S+\.(?:mp4|mov|avi|webm))`)

// GenerationUsecaseInterface defines the contract for the generation gateway.
type GenerationUsecaseInterface interface {
	Generate(ctx context.Context, req model.GenerateRequest) (*model.GenerateResult, error)
	Describe() ServiceDescriptor
}

// ServiceDescriptor is the static descriptor returned by GET /generate.
type ServiceDescriptor struct {
	Service  string   `json:"service"`
	Model    string   `json:"model"`
	Endpoint string   `json:"endpoint"`
	Status   string   `json:"status"`
	Features []string `json:"features"`
}

// GenerationUsecase translates a generation request into a single upstream
// model call and interprets the reply. It never touches the history store;
// persisting the result is a separate, explicit step for the caller.
type GenerationUsecase struct {
	client client.ModelClient
	events eventbus.EventBusInterface
	config *config.Config
	log    logger.Logger
}

// NewGenerationUsecase creates a new instance of GenerationUsecase.
func NewGenerationUsecase(
	mc client.ModelClient,
	events eventbus.EventBusInterface,
	cfg *config.Config,
	log logger.Logger,
) *GenerationUsecase {
	return &GenerationUsecase{
		client: mc,
		events: events,
		config: cfg,
		log:    log,
	}
}

// Generate runs one request through the gateway state machine:
// validating -> awaiting_external_response -> succeeded/failed/timed_out.
func (uc *GenerationUsecase) Generate(ctx context.Context, req model.GenerateRequest) (*model.GenerateResult, error) {
	state := model.StateValidating

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrInvalidPrompt
	}
	if req.Duration < MinDuration || req.Duration > MaxDuration {
		return nil, ErrInvalidDuration
	}

	state = model.StateAwaitingResponse
	uc.log.WithFields(map[string]interface{}{
		"state":       string(state),
		"duration":    req.Duration,
		"aspectRatio": req.AspectRatio,
		"style":       req.Style,
	}).Infof("Generating video: %s", truncatePrompt(req.Prompt))

	callCtx, cancel := context.WithTimeout(ctx, uc.config.Timeout)
	defer cancel()

	resp, err := uc.client.Complete(callCtx, client.ChatRequest{
		Model: uc.config.Model,
		Messages: []client.ChatMessage{
			{Role: client.RoleSystem, Content: systemPrompt},
			{Role: client.RoleUser, Content: enhancePrompt(req)},
		},
	})
	if err != nil {
		var statusErr *client.StatusError
		switch {
		case errors.Is(callCtx.Err(), context.DeadlineExceeded):
			state = model.StateTimedOut
			uc.publishFailure(ctx, req, string(state))
			return nil, ErrTimedOut
		case errors.As(err, &statusErr):
			state = model.StateFailed
			uc.publishFailure(ctx, req, string(state))
			return nil, &UpstreamError{StatusCode: statusErr.StatusCode}
		default:
			state = model.StateFailed
			uc.publishFailure(ctx, req, string(state))
			return nil, fmt.Errorf("upstream call failed: %w", err)
		}
	}

	if len(resp.Choices) == 0 {
		uc.publishFailure(ctx, req, string(model.StateFailed))
		return nil, ErrUpstreamFormat
	}
	content := resp.Choices[0].Message.Content

	videoURL, source := uc.resolveVideoURL(content, req)

	result := &model.GenerateResult{
		ID:       utils.NewVideoID(),
		VideoURL: videoURL,
		Source:   source,
		Metadata: model.Metadata{
			Prompt:      req.Prompt,
			Duration:    req.Duration,
			AspectRatio: req.AspectRatio,
			Style:       req.Style,
			CreatedAt:   time.Now(),
		},
	}

	uc.log.WithFields(map[string]interface{}{
		"state":  string(model.StateSucceeded),
		"id":     result.ID,
		"source": string(source),
	}).Info("Video generated successfully")

	if uc.events != nil {
		uc.events.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(
			eventbus.EventTypeGenerationCompleted, result, "generation"))
	}
	return result, nil
}

// resolveVideoURL scans the upstream reply for a direct video link. When
// none is found it synthesizes a placeholder encoding the requested
// duration, style and dimensions so the UI always has something to render.
func (uc *GenerationUsecase) resolveVideoURL(content string, req model.GenerateRequest) (string, model.VideoURLSource) {
	if match := videoURLRegex.FindStringSubmatch(content); len(match) > 1 {
		return match[1], model.SourceExtracted
	}

	width, height := dimensionsFor(req.AspectRatio)
	text := fmt.Sprintf("AI Generated Video %ds %s Style", req.Duration, capitalize(req.Style))
	placeholder := fmt.Sprintf("https://placehold.co/%dx%d.mp4?text=%s",
		width, height, url.QueryEscape(text))
	return placeholder, model.SourcePlaceholder
}

// Describe returns the static service descriptor.
func (uc *GenerationUsecase) Describe() ServiceDescriptor {
	return ServiceDescriptor{
		Service:  "AI Video Generation API",
		Model:    uc.config.Model,
		Endpoint: uc.config.Endpoint,
		Status:   "active",
		Features: []string{
			"Video generation from text prompts",
			"Multiple aspect ratios (16:9, 9:16, 1:1, 4:3)",
			"Various styles (cinematic, realistic, artistic, animated, documentary)",
			"Duration control (5-60 seconds)",
			"High-quality output",
		},
	}
}

func (uc *GenerationUsecase) publishFailure(ctx context.Context, req model.GenerateRequest, state string) {
	if uc.events == nil {
		return
	}
	uc.events.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(
		eventbus.EventTypeGenerationFailed,
		map[string]interface{}{"prompt": req.Prompt, "state": state},
		"generation"))
}

func dimensionsFor(aspectRatio string) (int, int) {
	switch aspectRatio {
	case "16:9":
		return 1920, 1080
	case "9:16":
		return 1080, 1920
	default:
		return 1080, 1080
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncatePrompt(prompt string) string {
	if len(prompt) <= 100 {
		return prompt
	}
	return prompt[:100] + "..."
}

// Ensure GenerationUsecase implements GenerationUsecaseInterface
var _ GenerationUsecaseInterface = (*GenerationUsecase)(nil)
