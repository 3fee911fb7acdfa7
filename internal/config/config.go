// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for links in reset emails.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// Database holds MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings.
	Redis RedisConfig

	// Session holds session issuance and verification settings.
	Session SessionConfig

	// Auth holds credential hashing and password reset settings.
	Auth AuthConfig

	// SMTP holds outbound mail settings. Optional; mail is disabled when
	// Host is empty.
	SMTP SMTPConfig

	// School holds the upstream campus-system settings for the proxy routes.
	School SchoolConfig
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MariaDB username (default: "lumina").
	User string

	// Password is the MariaDB password (default: "lumina").
	Password string

	// Name is the database name (default: "lumina").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// Host/User/Password/Name fields using the driver's Config.FormatDSN()
// to safely handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// SessionConfig holds session issuance and verification settings.
type SessionConfig struct {
	// SecretKey is the token encryption secret. An AES-256 key is derived
	// from it with SHA-256, so any length works, but 32+ characters is
	// required in production. Loaded once at startup; no rotation.
	SecretKey string

	// WebTTL is the lifetime of a WEB login session (default: 6h).
	WebTTL time.Duration

	// AppTTL is the lifetime of an APP login session (default: 720h).
	// Must be longer than WebTTL; mobile clients re-authenticate rarely.
	AppTTL time.Duration

	// IPPrefixGroups is how many colon-delimited address groups are kept
	// when truncating a client IP for session binding (default: 4).
	// Addresses without colons (plain IPv4) are compared whole.
	IPPrefixGroups int
}

// AuthConfig holds credential hashing and password reset settings.
type AuthConfig struct {
	// BcryptCost is the bcrypt work factor for password hashing (default: 12).
	BcryptCost int

	// ResetTokenTTL is how long a password reset token stays valid (default: 30m).
	ResetTokenTTL time.Duration
}

// SMTPConfig holds outbound mail settings for password reset delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SchoolConfig holds the upstream campus-system settings.
type SchoolConfig struct {
	// BaseURL is the campus API root (meal menus, timetables).
	BaseURL string

	// Timeout bounds each upstream request (default: 10s).
	Timeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing or inconsistent.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "lumina"),
			Password:        getEnv("DB_PASSWORD", "lumina"),
			Name:            getEnv("DB_NAME", "lumina"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		Session: SessionConfig{
			SecretKey:      getEnv("SESSION_SECRET", ""),
			WebTTL:         getEnvDuration("SESSION_WEB_TTL", 6*time.Hour),
			AppTTL:         getEnvDuration("SESSION_APP_TTL", 720*time.Hour),
			IPPrefixGroups: getEnvInt("SESSION_IP_PREFIX_GROUPS", 4),
		},

		Auth: AuthConfig{
			BcryptCost:    getEnvInt("BCRYPT_COST", 12),
			ResetTokenTTL: getEnvDuration("RESET_TOKEN_TTL", 30*time.Minute),
		},

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@localhost"),
		},

		School: SchoolConfig{
			BaseURL: getEnv("SCHOOL_API_URL", ""),
			Timeout: getEnvDuration("SCHOOL_API_TIMEOUT", 10*time.Second),
		},
	}

	// Validate required fields in production. Case-insensitive check catches
	// common variants like "Production", "prod", etc.
	envLower := strings.ToLower(cfg.Env)
	if envLower == "production" || envLower == "prod" {
		if cfg.Session.SecretKey == "" {
			return nil, fmt.Errorf("SESSION_SECRET is required in production")
		}
		if len(cfg.Session.SecretKey) < 32 {
			return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters in production")
		}
	}

	// Provide a dev-only default secret so local dev works without .env.
	if cfg.Session.SecretKey == "" {
		cfg.Session.SecretKey = "dev-secret-key-do-not-use-in-production!!"
	}

	// The two-tier lifetime split is a structural requirement: APP sessions
	// must outlive WEB sessions.
	if cfg.Session.AppTTL <= cfg.Session.WebTTL {
		return nil, fmt.Errorf("SESSION_APP_TTL (%s) must be greater than SESSION_WEB_TTL (%s)",
			cfg.Session.AppTTL, cfg.Session.WebTTL)
	}

	if cfg.Session.IPPrefixGroups < 1 {
		cfg.Session.IPPrefixGroups = 1
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "720h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
