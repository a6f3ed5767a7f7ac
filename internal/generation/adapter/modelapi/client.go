package modelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"video-studio/internal/generation/config"
	"video-studio/internal/generation/domain/client"
	"video-studio/internal/shared/logger"
)

// HTTPModelClient talks to the upstream chat-completions endpoint over
// plain HTTP. The overall deadline comes from the caller's context; the
// http.Client itself carries no timeout.
type HTTPModelClient struct {
	httpClient *http.Client
	config     *config.Config
	log        logger.Logger
}

// NewHTTPModelClient creates a client for the configured endpoint.
func NewHTTPModelClient(cfg *config.Config, log logger.Logger) *HTTPModelClient {
	return &HTTPModelClient{
		httpClient: &http.Client{},
		config:     cfg,
		log:        log,
	}
}

// Complete sends one chat-completions request and decodes the reply.
// A non-2xx reply is returned as *client.StatusError.
func (c *HTTPModelClient) Complete(ctx context.Context, req client.ChatRequest) (*client.ChatResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upstream request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.CustomerID != "" {
		httpReq.Header.Set("customerId", c.config.CustomerID)
	}
	if c.config.AuthToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Errorf("Upstream call failed with status %d: %s", resp.StatusCode, truncate(string(body), 200))
		return nil, &client.StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var chatResp client.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return &chatResp, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

var _ client.ModelClient = (*HTTPModelClient)(nil)
