package calendar

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up calendar routes. Reads go on the session-guarded
// group; writes go on the staff-guarded group.
func RegisterRoutes(authed, staff *echo.Group, h *Handler) {
	authed.GET("/calendar", h.Month)
	authed.GET("/calendar/:id", h.Get)

	staff.POST("/calendar", h.Create)
	staff.PATCH("/calendar/:id", h.Update)
	staff.DELETE("/calendar/:id", h.Delete)
}
