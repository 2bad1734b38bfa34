package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/message-board/internal/domain"
	apperrors "github.com/spec-kit/message-board/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for the lifetime of one
// request. The role is the one embedded in the token at issuance.
type Principal struct {
	Username string
	Role     domain.Role
}

// Middleware validates bearer tokens and attaches principals to the request.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	principal, err := m.tokens.Authenticate(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired):
			return apperrors.NewTokenExpired()
		case errors.Is(err, ErrTokenSignatureInvalid):
			return apperrors.NewTokenSignatureInvalid()
		default:
			return apperrors.NewTokenMalformed()
		}
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
