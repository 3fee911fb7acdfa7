package session

import (
	"github.com/labstack/echo/v4"
)

// Request headers the session core consumes on every protected route.
const (
	// HeaderSessionID carries the encrypted session token.
	HeaderSessionID = "Session-Id"

	// HeaderLoginType carries the client-declared login type (WEB|APP).
	HeaderLoginType = "Login-Type"
)

// Context keys for storing session data in Echo context. Modules read the
// authenticated user via the exported getter below.
const contextKeyUserID = "session_user_id"

// RequireSession returns middleware that gates a route group on a valid
// session. It reads the Session-Id and Login-Type headers, verifies them
// against the store with the request's client IP, and injects the user id
// into the context. Failures propagate as apperror values and render
// through the central error handler -- no response is written here.
func RequireSession(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderSessionID)
			loginType := c.Request().Header.Get(HeaderLoginType)

			userID, err := svc.Verify(c.Request().Context(), token, loginType, c.RealIP())
			if err != nil {
				return err
			}

			c.Set(contextKeyUserID, userID)
			return next(c)
		}
	}
}

// UserID retrieves the authenticated user's id from the Echo context.
// Returns empty string if RequireSession was not applied.
func UserID(c echo.Context) string {
	id, ok := c.Get(contextKeyUserID).(string)
	if !ok {
		return ""
	}
	return id
}
