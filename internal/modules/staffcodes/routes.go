package staffcodes

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up staff code routes on the given group. The caller
// is expected to pass a group already guarded by session and staff
// middleware; code management is never exposed to regular members.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.POST("/staff-codes", h.Issue)
	g.GET("/staff-codes", h.List)
	g.DELETE("/staff-codes/:id", h.Revoke)
}
