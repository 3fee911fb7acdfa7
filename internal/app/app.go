// Package app is the application bootstrap and dependency injection root.
// It creates and holds all shared infrastructure (DB pool, Redis client,
// Echo instance) and wires together all modules.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/luminaschool/lumina-server/internal/apperror"
	"github.com/luminaschool/lumina-server/internal/config"
	"github.com/luminaschool/lumina-server/internal/middleware"
)

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// DB is the MariaDB connection pool shared by all modules.
	DB *sql.DB

	// Redis is the Redis client backing the session store.
	Redis *redis.Client

	// Echo is the HTTP server instance.
	Echo *echo.Echo
}

// New creates a new App instance with the given dependencies and configures
// the Echo server with global middleware and error handling.
func New(cfg *config.Config, db *sql.DB, rdb *redis.Client) *App {
	e := echo.New()

	// Disable Echo's default banner and startup message -- we log our own.
	e.HideBanner = true
	e.HidePort = true

	// Configure trusted reverse proxy IPs so c.RealIP() returns the actual
	// client IP instead of the proxy's IP. Session IP binding and rate
	// limiting both depend on this.
	middleware.TrustedProxies(e, []string{
		"127.0.0.0/8",    // Localhost
		"10.0.0.0/8",     // Docker default bridge
		"172.16.0.0/12",  // Docker bridge (alternate range)
		"192.168.0.0/16", // Common LAN
		"fd00::/8",       // IPv6 private
	})

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Echo:   e,
	}

	// Register global middleware in order of execution.
	app.setupMiddleware()

	// Register the custom error handler that renders the L#### envelope.
	e.HTTPErrorHandler = app.errorHandler

	return app
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: outermost (recovery) runs first.
func (a *App) setupMiddleware() {
	// Panic recovery -- must be outermost to catch panics from all other
	// middleware.
	a.Echo.Use(middleware.Recovery())

	// Request logging -- method, path, status, latency for every request.
	a.Echo.Use(middleware.RequestLogger())

	// Security headers. The server is API-only, so the CSP denies everything.
	a.Echo.Use(middleware.SecurityHeaders())

	// CORS -- the web frontend is served from a different origin and sends
	// the Session-Id and Login-Type headers cross-origin.
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   []string{a.Config.BaseURL},
		AllowCredentials: true,
	}))
}

// errorHandler is the custom Echo error handler. Every failure, known or
// not, leaves the server as the L#### JSON envelope: taxonomy errors render
// their registered status and message, router-level Echo errors map onto
// the nearest code, and anything unrecognized downgrades to the unknown
// code with a 500.
func (a *App) errorHandler(err error, c echo.Context) {
	// Don't double-write if response is already committed.
	if c.Response().Committed {
		return
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			appErr = fromEchoError(echoErr)
		} else {
			appErr = apperror.From(err)
		}
	}

	// Internal causes are for the log, never for the wire.
	if appErr.Internal != nil {
		slog.Error("request failed",
			slog.String("code", string(appErr.Code)),
			slog.Any("internal", appErr.Internal),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
		)
	}

	status, body := apperror.Render(appErr)
	if err := c.JSON(status, body); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
	}
}

// fromEchoError maps router-generated errors (unknown route, wrong method,
// oversized body) onto taxonomy codes. Everything else keeps Echo's status
// under the unknown code so the envelope shape never varies.
func fromEchoError(echoErr *echo.HTTPError) *apperror.Error {
	switch echoErr.Code {
	case http.StatusNotFound:
		return apperror.New(apperror.CodeEntityNotFound)
	case http.StatusMethodNotAllowed:
		return apperror.New(apperror.CodeMethodNotAllowed)
	case http.StatusRequestEntityTooLarge:
		return apperror.New(apperror.CodePayloadTooLarge)
	}

	appErr := apperror.New(apperror.CodeUnknownError)
	appErr.Status = echoErr.Code
	if msg, ok := echoErr.Message.(string); ok && msg != "" {
		appErr.Details = map[string]any{"cause": msg}
	}
	return appErr
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting Lumina server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
	)
	return a.Echo.Start(addr)
}
