package members

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/luminaschool/lumina-server/internal/apperror"
)

// Handler handles HTTP requests for rosters.
type Handler struct {
	service MemberService
}

// NewHandler creates a new members handler.
func NewHandler(service MemberService) *Handler {
	return &Handler{service: service}
}

// Groups returns the populated grade/class buckets (GET /members/groups).
func (h *Handler) Groups(c echo.Context) error {
	groups, err := h.service.Groups(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

// Roster returns one class roster (GET /members?grade=2&class=3).
func (h *Handler) Roster(c echo.Context) error {
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

	members, err := h.service.Roster(c.Request().Context(), grade, class)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}
