package announcements

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/session"
)

// Handler handles HTTP requests for announcements.
type Handler struct {
	service AnnouncementService
}

// NewHandler creates a new announcements handler.
func NewHandler(service AnnouncementService) *Handler {
	return &Handler{service: service}
}

// List returns a page of announcements (GET /announcements?page=&limit=).
func (h *Handler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns one announcement (GET /announcements/:id).
func (h *Handler) Get(c echo.Context) error {
	a, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Create publishes an announcement (POST /announcements). Staff only.
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}

	a, err := h.service.Create(c.Request().Context(), session.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// Update edits an announcement (PATCH /announcements/:id). Staff only.
func (h *Handler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}

	a, err := h.service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Delete removes an announcement (DELETE /announcements/:id). Staff only.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
