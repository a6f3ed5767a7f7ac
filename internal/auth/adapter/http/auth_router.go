package http

import (
	"errors"
	"strings"

	"video-studio/internal/auth/usecase"
	"video-studio/internal/shared/logger"
	"video-studio/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// Auth actions accepted by the POST endpoint
const (
	actionLogin  = "login"
	actionSignup = "signup"
)

// AuthHTTPHandler handles HTTP requests for authentication
type AuthHTTPHandler struct {
	usecase usecase.AuthUsecaseInterface
	log     logger.Logger
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, log logger.Logger) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		usecase: uc,
		log:     log,
	}
}

// AuthRequest is the body of POST /auth.
type AuthRequest struct {
	Action      string `json:"action"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// SetupAuthRoutes registers the authentication endpoints.
func (h *AuthHTTPHandler) SetupAuthRoutes(router fiber.Router) {
	router.Post("/auth", RateLimiter(), h.Authenticate)
	router.Get("/auth", h.CheckStatus)
	router.Delete("/auth", h.Logout)
}

// Authenticate handles login and signup, dispatched on the action field.
func (h *AuthHTTPHandler) Authenticate(c *fiber.Ctx) error {
	var req AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.Action == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing required fields",
		})
	}

	switch req.Action {
	case actionLogin:
		return h.login(c, req)
	case actionSignup:
		return h.signup(c, req)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   `Invalid action. Use "login" or "signup"`,
		})
	}
}

func (h *AuthHTTPHandler) login(c *fiber.Ctx, req AuthRequest) error {
	user, token, err := h.usecase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidEmailFormat):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid email format",
			})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid email or password",
			})
		default:
			h.log.Errorf("Login failed: %v", err)
			return internalError(c)
		}
	}

	ctx := utils.WithUserEmail(utils.WithUserID(c.UserContext(), user.ID), user.Email)
	h.log.WithContext(ctx).Info("User logged in")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user.PublicView(),
	})
}

func (h *AuthHTTPHandler) signup(c *fiber.Ctx, req AuthRequest) error {
	user, token, err := h.usecase.Signup(c.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidEmailFormat):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid email format",
			})
		case errors.Is(err, usecase.ErrDisplayNameRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Display name is required",
			})
		case errors.Is(err, usecase.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "User with this email already exists",
			})
		default:
			h.log.Errorf("Signup failed: %v", err)
			return internalError(c)
		}
	}

	ctx := utils.WithUserEmail(utils.WithUserID(c.UserContext(), user.ID), user.Email)
	h.log.WithContext(ctx).Info("Account created")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully",
		"token":   token,
		"user":    user.PublicView(),
	})
}

// CheckStatus reports whether the bearer token resolves to an authenticated
// user. Failures are soft: the response is 200 with authenticated=false.
func (h *AuthHTTPHandler) CheckStatus(c *fiber.Ctx) error {
	token := bearerToken(c)

	user, err := h.usecase.CheckStatus(c.Context(), token)
	if err != nil {
		reason := ""
		switch {
		case errors.Is(err, usecase.ErrNoToken):
			reason = "No valid authentication token"
		case errors.Is(err, usecase.ErrSessionInvalid):
			reason = "Invalid session token"
		case errors.Is(err, usecase.ErrSessionExpired):
			reason = "Session expired"
		case errors.Is(err, usecase.ErrUserMissing):
			reason = "User not found"
		default:
			h.log.Errorf("Auth check failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success":       false,
				"authenticated": false,
				"error":         "Internal server error",
			})
		}
		return c.JSON(fiber.Map{
			"success":       false,
			"authenticated": false,
			"error":         reason,
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"authenticated": true,
		"user":          user.PublicView(),
	})
}

// Logout revokes the bearer token. Revoking an unknown token still succeeds.
func (h *AuthHTTPHandler) Logout(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No authentication token provided",
		})
	}

	if err := h.usecase.Logout(c.Context(), token); err != nil {
		h.log.Errorf("Logout failed: %v", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Internal server error",
	})
}
