package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/session"
)

// RequireStaff returns middleware that restricts a route group to staff
// accounts. Must run after session.RequireSession -- it reads the
// authenticated user id from the context and loads the account to check
// its type.
func RequireStaff(repo AccountRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, err := repo.FindByID(c.Request().Context(), session.UserID(c))
			if err != nil {
				return err
			}
			if !account.IsStaff() {
				return apperror.New(apperror.CodeStaffOnly)
			}
			return next(c)
		}
	}
}

// RequireLevel returns middleware that restricts a route group to accounts
// at or above the given level. Staff level checks compose with
// RequireStaff when both constraints apply.
func RequireLevel(repo AccountRepository, min int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, err := repo.FindByID(c.Request().Context(), session.UserID(c))
			if err != nil {
				return err
			}
			if account.Level < min {
				return apperror.New(apperror.CodeInsufficientLevel)
			}
			return next(c)
		}
	}
}
