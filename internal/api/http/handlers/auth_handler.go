package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/message-board/internal/api/dto"
	"github.com/spec-kit/message-board/internal/auth"
	"github.com/spec-kit/message-board/internal/service"
	apperrors "github.com/spec-kit/message-board/pkg/util"
)

// AuthHandler exposes login and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		AccessToken: result.Token,
		TokenType:   "Bearer",
		ExpiresIn:   result.ExpiresIn,
		Username:    result.Username,
		Role:        string(result.Role),
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this is an
// acknowledgment only; the client discards its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(http.StatusText(http.StatusUnauthorized))
	}

	user, err := h.auth.CurrentUser(c.UserContext(), principal.Username)
	if err != nil {
		return err
	}

	return c.JSON(dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
}
