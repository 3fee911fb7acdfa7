package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/session"
)

// sessionCookieName is the cookie WEB logins receive in addition to the
// token in the response body. Cookie transport is handler policy -- the
// session core only hands back the encrypted token.
const sessionCookieName = "lumina_session"

// Handler handles HTTP requests for authentication. Handlers are thin:
// they bind the request, call the service, and render JSON. No business
// logic lives here.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// Register processes sign-up (POST /auth/register).
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}

	account, err := h.service.Register(c.Request().Context(), RegisterInput{
		Email:     req.Email,
		Name:      req.Name,
		Password:  req.Password,
		Type:      req.Type,
		StaffCode: req.StaffCode,
		Grade:     req.Grade,
		Class:     req.Class,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, account)
}

// Login processes a credential login (POST /auth/login). The login type
// comes from the Login-Type header; WEB logins additionally get the token
// as an HttpOnly cookie for browser convenience.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}

	loginType := c.Request().Header.Get(session.HeaderLoginType)

	result, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		LoginType: loginType,
		ClientIP:  c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return err
	}

	if loginType == string(session.LoginTypeWeb) {
		c.SetCookie(&http.Cookie{
			Name:     sessionCookieName,
			Value:    result.Token,
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return c.JSON(http.StatusOK, result)
}

// Logout revokes the presented session (POST /auth/logout) and clears the
// browser cookie if one was set.
func (h *Handler) Logout(c echo.Context) error {
	token := c.Request().Header.Get(session.HeaderSessionID)
	loginType := c.Request().Header.Get(session.HeaderLoginType)

	if err := h.service.Logout(c.Request().Context(), token, loginType, c.RealIP()); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})

	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated account (GET /auth/me).
func (h *Handler) Me(c echo.Context) error {
	account, err := h.service.Me(c.Request().Context(), session.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Sessions lists the account's active sessions (GET /auth/sessions).
func (h *Handler) Sessions(c echo.Context) error {
	list, err := h.service.Sessions(c.Request().Context(), session.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// RevokeSession revokes one session by id (DELETE /auth/sessions/:id).
// Revoking an already-gone session succeeds: the end state is the same.
func (h *Handler) RevokeSession(c echo.Context) error {
	if err := h.service.RevokeSession(c.Request().Context(), session.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestPasswordReset starts the reset flow (POST /auth/password-reset).
// Always 204 for well-formed requests, even for unknown emails.
func (h *Handler) RequestPasswordReset(c echo.Context) error {
	var req ResetRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}
	if err := h.service.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ConfirmPasswordReset completes the reset flow
// (POST /auth/password-reset/confirm).
func (h *Handler) ConfirmPasswordReset(c echo.Context) error {
	var req ResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return apperror.New(apperror.CodeMissingRequiredFields)
	}
	if err := h.service.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAccount removes the authenticated account (DELETE /auth/account).
func (h *Handler) DeleteAccount(c echo.Context) error {
	if err := h.service.DeleteAccount(c.Request().Context(), session.UserID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
