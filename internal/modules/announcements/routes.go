package announcements

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up announcement routes. Reads go on the
// session-guarded group; writes go on the staff-guarded group.
func RegisterRoutes(authed, staff *echo.Group, h *Handler) {
	authed.GET("/announcements", h.List)
	authed.GET("/announcements/:id", h.Get)

	staff.POST("/announcements", h.Create)
	staff.PATCH("/announcements/:id", h.Update)
	staff.DELETE("/announcements/:id", h.Delete)
}
