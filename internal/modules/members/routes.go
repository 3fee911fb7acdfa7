package members

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up roster routes on the given group. The caller is
// expected to pass a staff-guarded group; rosters carry contact details and
// are never shown to regular members.
func RegisterRoutes(staff *echo.Group, h *Handler) {
	staff.GET("/members", h.Roster)
	staff.GET("/members/groups", h.Groups)
}
