package school

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// Handler handles HTTP requests for the campus proxies.
type Handler struct {
	service SchoolService
}

// NewHandler creates a new school handler.
func NewHandler(service SchoolService) *Handler {
	return &Handler{service: service}
}

// Meals returns menus for a date (GET /school/meals?date=2026-09-12).
func (h *Handler) Meals(c echo.Context) error {
	meals, err := h.service.Meals(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meals)
}

// Timetable returns a class schedule (GET /school/timetable?grade=2&class=3).
func (h *Handler) Timetable(c echo.Context) error {
	grade, err := strconv.Atoi(c.QueryParam("grade"))
	if err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields).
			WithDetails(map[string]any{"field": "grade"})
	}
	class, err := strconv.Atoi(c.QueryParam("class"))
	if err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields).
			WithDetails(map[string]any{"field": "class"})
	}

	entries, err := h.service.Timetable(c.Request().Context(), grade, class)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
