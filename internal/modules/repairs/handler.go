package repairs

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/session"
)

// Handler handles HTTP requests for repair tickets.
type Handler struct {
	service TicketService
}

// NewHandler creates a new repairs handler.
func NewHandler(service TicketService) *Handler {
	return &Handler{service: service}
}

// Create files a ticket (POST /repairs).
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}

	t, err := h.service.Create(c.Request().Context(), session.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// ListOwn returns the caller's tickets (GET /repairs).
func (h *Handler) ListOwn(c echo.Context) error {
	tickets, err := h.service.ListOwn(c.Request().Context(), session.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// Get returns one of the caller's tickets (GET /repairs/:id).
func (h *Handler) Get(c echo.Context) error {
	t, err := h.service.Get(c.Request().Context(), session.UserID(c), false, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// ListAll returns the full queue (GET /repairs/queue?status=). Staff only.
func (h *Handler) ListAll(c echo.Context) error {
	tickets, err := h.service.ListAll(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// GetAny returns any ticket by id (GET /repairs/queue/:id). Staff only.
func (h *Handler) GetAny(c echo.Context) error {
	t, err := h.service.Get(c.Request().Context(), session.UserID(c), true, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// SetStatus moves a ticket (PATCH /repairs/queue/:id/status). Staff only.
func (h *Handler) SetStatus(c echo.Context) error {
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}

	t, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}
