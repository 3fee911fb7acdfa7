package school

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up campus proxy routes on the session-guarded group.
func RegisterRoutes(authed *echo.Group, h *Handler) {
	authed.GET("/school/meals", h.Meals)
	authed.GET("/school/timetable", h.Timetable)
}
