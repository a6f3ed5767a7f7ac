package model

import (
	"errors"
	"time"
)

// Domain errors shared between repositories and usecases.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)

// User represents a registered account. Users are created on signup and are
// never mutated or deleted afterwards.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PublicView returns the subset of the user exposed over the API.
func (u *User) PublicView() map[string]interface{} {
	return map[string]interface{}{
		"id":          u.ID,
		"email":       u.Email,
		"displayName": u.DisplayName,
	}
}
