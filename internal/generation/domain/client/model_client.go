package client

import (
	"context"
	"fmt"
)

// Chat message roles
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is one message of a chat-completions request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the upstream request payload.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the upstream reply payload.
type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}

// ChatChoice is one completion choice.
type ChatChoice struct {
	Message ChatChoiceMessage `json:"message"`
}

// ChatChoiceMessage carries the completion text.
type ChatChoiceMessage struct {
	Content string `json:"content"`
}

// StatusError reports a non-2xx upstream reply.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// ModelClient sends a single chat-completions request to the upstream model
// endpoint. Implementations must honor context cancellation.
type ModelClient interface {
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
