package calendar

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/session"
)

// Handler handles HTTP requests for the calendar.
type Handler struct {
	service EventService
}

// NewHandler creates a new calendar handler.
func NewHandler(service EventService) *Handler {
	return &Handler{service: service}
}

// Month lists events for one month (GET /calendar?year=2026&month=9).
// Defaults to the current month when parameters are absent.
func (h *Handler) Month(c echo.Context) error {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()

	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return apperror.New(apperror.CodeMissingRequiredFields).
				WithDetails(map[string]any{"field": "year"})
		}
		year = y
	}
	if v := c.QueryParam("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return apperror.New(apperror.CodeMissingRequiredFields).
				WithDetails(map[string]any{"field": "month"})
		}
		month = time.Month(m)
	}

	events, err := h.service.Month(c.Request().Context(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get returns one event (GET /calendar/:id).
func (h *Handler) Get(c echo.Context) error {
	e, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Create adds an event (POST /calendar). Staff only.
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}

	e, err := h.service.Create(c.Request().Context(), session.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// Update edits an event (PATCH /calendar/:id). Staff only.
func (h *Handler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}

	e, err := h.service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Delete removes an event (DELETE /calendar/:id). Staff only.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
