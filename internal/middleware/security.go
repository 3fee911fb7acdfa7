package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders returns middleware that sets security-related HTTP headers
// on every response. These headers protect against common web attacks even
// if application-level vulnerabilities exist.
//
// Lumina runs behind the association's reverse proxy which terminates TLS;
// these headers provide defense-in-depth at the application layer.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// The API serves JSON only; a restrictive CSP keeps any
			// accidentally reflected content inert in browsers.
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			// Strict-Transport-Security: enforce HTTPS for 1 year including
			// subdomains. TLS terminates at the reverse proxy.
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

			// X-Content-Type-Options: prevent MIME type sniffing.
			h.Set("X-Content-Type-Options", "nosniff")

			// X-Frame-Options: prevent clickjacking (redundant with CSP
			// frame-ancestors but some older browsers only support this).
			h.Set("X-Frame-Options", "DENY")

			// Referrer-Policy: limit referrer information leaked to external sites.
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			return next(c)
		}
	}
}
