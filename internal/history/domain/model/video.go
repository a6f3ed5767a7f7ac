package model

import (
	"errors"
	"time"
)

// Domain errors shared between repositories and usecases.
var ErrVideoNotFound = errors.New("video not found")

// Status is the lifecycle state of a video record.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusProcessing Status = "processing"
	StatusFailed     Status = "failed"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusCompleted, StatusProcessing, StatusFailed:
		return true
	}
	return false
}

// VideoRecord is one entry of the generation history.
type VideoRecord struct {
	ID           string    `json:"id"`
	Prompt       string    `json:"prompt"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	Status       Status    `json:"status"`
	Duration     int       `json:"duration"`
	AspectRatio  string    `json:"aspectRatio"`
	Style        string    `json:"style"`
}
