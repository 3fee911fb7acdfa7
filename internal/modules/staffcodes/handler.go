package staffcodes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/session"
)

// Handler handles HTTP requests for staff code management.
type Handler struct {
	service StaffCodeService
}

// NewHandler creates a new staff codes handler.
func NewHandler(service StaffCodeService) *Handler {
	return &Handler{service: service}
}

// Issue mints a new code (POST /staff-codes).
func (h *Handler) Issue(c echo.Context) error {
	var req IssueRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}

	code, err := h.service.Issue(c.Request().Context(), session.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, code)
}

// List returns all issued codes (GET /staff-codes).
func (h *Handler) List(c echo.Context) error {
	codes, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, codes)
}

// Revoke disables a code (DELETE /staff-codes/:id).
func (h *Handler) Revoke(c echo.Context) error {
	if err := h.service.Revoke(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
