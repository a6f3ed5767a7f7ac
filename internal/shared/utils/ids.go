package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOpaqueID generates an identifier of the form <prefix>_<unixms>_<suffix>.
// The suffix is random hex; uniqueness is probabilistic, not guaranteed.
func NewOpaqueID(prefix string, suffixLen int) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	if suffixLen > 0 && suffixLen < len(suffix) {
		suffix = suffix[:suffixLen]
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

// NewUserID generates an opaque user identifier.
func NewUserID() string {
	return NewOpaqueID("user", 9)
}

// NewVideoID generates an opaque video identifier.
func NewVideoID() string {
	return NewOpaqueID("video", 9)
}

// NewSessionToken generates an opaque bearer token for a session.
func NewSessionToken() string {
	return NewOpaqueID("sess", 16)
}
