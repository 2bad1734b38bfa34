package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/message-board/internal/api/http/handlers"
	"github.com/spec-kit/message-board/internal/auth"
	"github.com/spec-kit/message-board/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Messages       *handlers.MessagesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Reads on the board are public; mutations
// require an authenticated principal with a known role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	api.Get("/messages", cfg.Messages.List)
	api.Get("/messages/:id", cfg.Messages.Get)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleUser, domain.RoleAdmin))
	protected.Post("/messages", cfg.Messages.Create)
	protected.Delete("/messages/:id", cfg.Messages.Delete)
}
