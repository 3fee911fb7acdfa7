package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luminaschool/lumina-server/internal/middleware"
	"github.com/luminaschool/lumina-server/internal/session"
)

// RegisterRoutes sets up all auth routes on the given API group.
//
// POST endpoints that accept credentials are rate-limited to slow
// brute-force and credential stuffing: 10 attempts per IP per minute for
// login, 5 for register and password reset.
func RegisterRoutes(g *echo.Group, h *Handler, sessions *session.Service) {
	// Public routes -- no session required.
	g.POST("/auth/register", h.Register, middleware.RateLimit(5, time.Minute))
	g.POST("/auth/login", h.Login, middleware.RateLimit(10, time.Minute))
	g.POST("/auth/password-reset", h.RequestPasswordReset, middleware.RateLimit(5, time.Minute))
	g.POST("/auth/password-reset/confirm", h.ConfirmPasswordReset, middleware.RateLimit(5, time.Minute))

	// Logout verifies the presented token itself; no middleware needed.
	g.POST("/auth/logout", h.Logout)

	// Protected routes.
	protected := g.Group("/auth", session.RequireSession(sessions))
	protected.GET("/me", h.Me)
	protected.GET("/sessions", h.Sessions)
	protected.DELETE("/sessions/:id", h.RevokeSession)
	protected.DELETE("/account", h.DeleteAccount)
}
