package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"video-studio/internal/generation/adapter/modelapi"
	"video-studio/internal/generation/config"
	"video-studio/internal/generation/domain/client"
	"video-studio/internal/generation/domain/model"
	"video-studio/internal/generation/usecase"
	"video-studio/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstreamReply builds a chat-completions response with the given content.
func upstreamReply(content string) client.ChatResponse {
	return client.ChatResponse{
		Choices: []client.ChatChoice{
			{Message: client.ChatChoiceMessage{Content: content}},
		},
	}
}

func newTestUsecase(endpoint string, timeout time.Duration) *usecase.GenerationUsecase {
	cfg := &config.Config{
		Endpoint: endpoint,
		Model:    "replicate/google/veo-3",
		Timeout:  timeout,
	}
	mc := modelapi.NewHTTPModelClient(cfg, logger.NewLogger())
	return usecase.NewGenerationUsecase(mc, nil, cfg, logger.NewLogger())
}

func validRequest() model.GenerateRequest {
	return model.GenerateRequest{
		Prompt:      "A timelapse of clouds over a mountain range",
		Duration:    10,
		AspectRatio: "16:9",
		Style:       "cinematic",
	}
}

func TestGenerate_Validation(t *testing.T) {
	uc := newTestUsecase("http://unused.invalid", time.Minute)
	ctx := context.Background()

	_, err := uc.Generate(ctx, model.GenerateRequest{Prompt: "   ", Duration: 10})
	assert.ErrorIs(t, err, usecase.ErrInvalidPrompt)

	req := validRequest()
	req.Duration = 3
	_, err = uc.Generate(ctx, req)
	assert.ErrorIs(t, err, usecase.ErrInvalidDuration)

	req.Duration = 61
	_, err = uc.Generate(ctx, req)
	assert.ErrorIs(t, err, usecase.ErrInvalidDuration)
}

func TestGenerate_ExtractsVideoURL(t *testing.T) {
	var captured client.ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(upstreamReply(
			"Here is your video: https://cdn.example.com/output/clip-42.mp4 enjoy!"))
	}))
	defer server.Close()

	uc := newTestUsecase(server.URL, time.Minute)

	result, err := uc.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/output/clip-42.mp4", result.VideoURL)
	assert.Equal(t, model.SourceExtracted, result.Source)
	assert.True(t, strings.HasPrefix(result.ID, "video_"))
	assert.Equal(t, 10, result.Metadata.Duration)

	// The upstream call carries a system message and the enhanced user prompt.
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, client.RoleSystem, captured.Messages[0].Role)
	assert.Equal(t, client.RoleUser, captured.Messages[1].Role)
	assert.Contains(t, captured.Messages[1].Content, "A timelapse of clouds over a mountain range")
	assert.Equal(t, "replicate/google/veo-3", captured.Model)
}

func TestGenerate_PlaceholderFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(upstreamReply("I described the scene but produced no link."))
	}))
	defer server.Close()

	uc := newTestUsecase(server.URL, time.Minute)

	result, err := uc.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, model.SourcePlaceholder, result.Source)
	assert.Contains(t, result.VideoURL, "https://placehold.co/1920x1080.mp4")
	assert.Contains(t, result.VideoURL, "Cinematic")
}

func TestGenerate_PlaceholderDimensions(t *testing.T) {
	cases := []struct {
		aspectRatio string
		want        string
	}{
		{"16:9", "1920x1080"},
		{"9:16", "1080x1920"},
		{"1:1", "1080x1080"},
		{"4:3", "1080x1080"},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(upstreamReply("no link here"))
	}))
	defer server.Close()

	uc := newTestUsecase(server.URL, time.Minute)

	for _, tc := range cases {
		req := validRequest()
		req.AspectRatio = tc.aspectRatio

		result, err := uc.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Contains(t, result.VideoURL, tc.want, "aspect ratio %s", tc.aspectRatio)
	}
}

func TestGenerate_UpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	uc := newTestUsecase(server.URL, time.Minute)

	_, err := uc.Generate(context.Background(), validRequest())

	var upstreamErr *usecase.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
}

func TestGenerate_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.ChatResponse{})
	}))
	defer server.Close()

	uc := newTestUsecase(server.URL, time.Minute)

	_, err := uc.Generate(context.Background(), validRequest())
	assert.ErrorIs(t, err, usecase.ErrUpstreamFormat)
}

func TestGenerate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	uc := newTestUsecase(server.URL, 50*time.Millisecond)

	_, err := uc.Generate(context.Background(), validRequest())
	assert.ErrorIs(t, err, usecase.ErrTimedOut)
}

func TestDescribe(t *testing.T) {
	uc := newTestUsecase("https://upstream.example.com/chat/completions", time.Minute)

	descriptor := uc.Describe()
	assert.Equal(t, "AI Video Generation API", descriptor.Service)
	assert.Equal(t, "replicate/google/veo-3", descriptor.Model)
	assert.Equal(t, "https://upstream.example.com/chat/completions", descriptor.Endpoint)
	assert.Equal(t, "active", descriptor.Status)
	assert.NotEmpty(t, descriptor.Features)
}
