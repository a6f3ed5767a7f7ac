package memory

import (
	"context"
	"strings"

	"video-studio/internal/auth/domain/model"
	"video-studio/internal/auth/domain/repository"
	"video-studio/internal/shared/store"
)

// UserRepository is an in-memory user store backed by the shared record
// store. Users are appended in signup order and never removed.
type UserRepository struct {
	users *store.Store[*model.User]
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: store.New(func(u *model.User) string { return u.ID }),
	}
}

// CreateUser appends a user. Email uniqueness is checked by the usecase at
// signup time only; the store itself enforces no constraint.
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	r.users.Append(user)
	return nil
}

// GetUserByID returns the user with the given ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := r.users.FindByID(id)
	if err != nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// GetUserByEmail returns the first user whose email matches case-insensitively.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := r.users.FindOne(func(u *model.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Len returns the number of stored users.
func (r *UserRepository) Len() int {
	return r.users.Len()
}

var _ repository.UserRepository = (*UserRepository)(nil)
