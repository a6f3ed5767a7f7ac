package model

import "time"

// State tracks a generation request through its lifecycle. States are used
// for logging and tests; a request object is short-lived.
type State string

const (
	StateIdle             State = "idle"
	StateValidating       State = "validating"
	StateAwaitingResponse State = "awaiting_external_response"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
	StateTimedOut         State = "timed_out"
)

// VideoURLSource says where the returned URL came from: a genuine upstream
// artifact or a synthesized fallback.
type VideoURLSource string

const (
	SourceExtracted   VideoURLSource = "extracted"
	SourcePlaceholder VideoURLSource = "placeholder"
)

// GenerateRequest carries the user's generation parameters.
type GenerateRequest struct {
	Prompt      string `json:"prompt"`
	Duration    int    `json:"duration"`
	AspectRatio string `json:"aspectRatio"`
	Style       string `json:"style"`
}

// Metadata echoes the request parameters on a successful result.
type Metadata struct {
	Prompt      string    `json:"prompt"`
	Duration    int       `json:"duration"`
	AspectRatio string    `json:"aspectRatio"`
	Style       string    `json:"style"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GenerateResult is a successful generation. The ID is a fresh opaque
// identifier, independent of any history record ID.
type GenerateResult struct {
	ID       string         `json:"id"`
	VideoURL string         `json:"videoUrl"`
	Source   VideoURLSource `json:"source"`
	Metadata Metadata       `json:"metadata"`
}
