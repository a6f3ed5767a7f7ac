package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"video-studio/internal/auth/config"
	"video-studio/internal/auth/domain/model"
	"video-studio/internal/auth/domain/repository"
	"video-studio/internal/shared/utils"
)

var (
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidEmailFormat  = errors.New("invalid email format")
	ErrDisplayNameRequired = errors.New("display name is required")
	ErrNoToken             = errors.New("no authentication token provided")
	ErrSessionInvalid      = errors.New("invalid session token")
	ErrSessionExpired      = errors.New("session expired")
	ErrUserMissing         = errors.New("user not found")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthUsecaseInterface defines the contract for authentication use cases.
type AuthUsecaseInterface interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Signup(ctx context.Context, email, password, displayName string) (*model.User, string, error)
	CheckStatus(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
	SweepExpiredSessions(ctx context.Context) (int, error)
}

// AuthUsecase implements the demo authentication logic: any non-empty
// password is accepted for a known email; passwords are never stored or
// compared.
type AuthUsecase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	config   *config.Config
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	cfg *config.Config,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		sessions: sessions,
		config:   cfg,
	}
}

func (uc *AuthUsecase) validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmailFormat
	}
	return nil
}

// createSession issues a fresh session for the user and returns its token.
func (uc *AuthUsecase) createSession(ctx context.Context, userID string) (string, error) {
	now := time.Now()
	session := &model.Session{
		Token:     utils.NewSessionToken(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.config.SessionTTL),
	}
	if err := uc.sessions.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return session.Token, nil
}

// Login authenticates a user. Any non-empty password is accepted if a user
// with the given email exists.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if err := uc.validateEmail(email); err != nil {
		return nil, "", err
	}
	if password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := uc.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	token, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Signup creates a new user and logs it in.
func (uc *AuthUsecase) Signup(ctx context.Context, email, password, displayName string) (*model.User, string, error) {
	if err := uc.validateEmail(email); err != nil {
		return nil, "", err
	}
	if password == "" {
		return nil, "", ErrInvalidCredentials
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, "", ErrDisplayNameRequired
	}

	// Checked at signup time only; concurrent signups can in principle race
	// past this check.
	existing, err := uc.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	user := &model.User{
		ID:          utils.NewUserID(),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		DisplayName: strings.TrimSpace(displayName),
		CreatedAt:   time.Now(),
	}
	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CheckStatus resolves a bearer token to its user. Expired sessions and
// sessions referencing a missing user are revoked as a side effect.
func (uc *AuthUsecase) CheckStatus(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	session, err := uc.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(time.Now()) {
		if err := uc.sessions.DeleteSession(ctx, token); err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, ErrSessionExpired
	}

	user, err := uc.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		// Dangling session: the referenced user is gone. Revoke it.
		if delErr := uc.sessions.DeleteSession(ctx, token); delErr != nil {
			return nil, fmt.Errorf("failed to delete dangling session: %w", delErr)
		}
		return nil, ErrUserMissing
	}

	return user, nil
}

// Logout revokes the session for the given token. Revoking a non-existent
// token is not an error.
func (uc *AuthUsecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoToken
	}
	return uc.sessions.DeleteSession(ctx, token)
}

// SweepExpiredSessions removes every session whose expiry has passed.
func (uc *AuthUsecase) SweepExpiredSessions(ctx context.Context) (int, error) {
	return uc.sessions.DeleteExpiredSessions(ctx, time.Now())
}

// Ensure AuthUsecase implements AuthUsecaseInterface
var _ AuthUsecaseInterface = (*AuthUsecase)(nil)
