package repairs

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up repair ticket routes. Members file and read their
// own tickets on the session-guarded group; the queue lives on the
// staff-guarded group.
func RegisterRoutes(authed, staff *echo.Group, h *Handler) {
	authed.POST("/repairs", h.Create)
	authed.GET("/repairs", h.ListOwn)

	// Register the static queue routes before the :id route so "queue"
	// never binds as a ticket id.
	staff.GET("/repairs/queue", h.ListAll)
	staff.GET("/repairs/queue/:id", h.GetAny)
	staff.PATCH("/repairs/queue/:id/status", h.SetStatus)

	authed.GET("/repairs/:id", h.Get)
}
