// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Pagination PaginationConfig
	Export     ExportConfig
	Rate       RateLimitConfig
	Security   SecurityConfig
	Logging    LoggingConfig
	Migrate    MigrateConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 2m for large exports)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"2m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// MaxBodyBytes bounds add and edit request bodies (default: 1MB)
	MaxBodyBytes int64 `env:"SERVER_MAX_BODY_BYTES" default:"1048576"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Driver selects the store: postgres or sqlite (default: postgres)
	Driver string `env:"DB_DRIVER" default:"postgres"`

	// URL is the PostgreSQL connection string or SQLite file path (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 15)
	MaxConns int `env:"DB_MAX_CONNS" default:"15"`

	// MinConns is the minimum number of connections to keep open (default: 5)
	MinConns int `env:"DB_MIN_CONNS" default:"5"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 20s)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"20s"`

	// AcquireTimeout bounds the wait for a free pooled connection (default: 30s)
	AcquireTimeout time.Duration `env:"DB_ACQUIRE_TIMEOUT" default:"30s"`
}

// PaginationConfig holds list defaults.
type PaginationConfig struct {
	// DefaultLimit is the page size when a request omits limit (default: 20)
	DefaultLimit int `env:"PAGINATION_DEFAULT_LIMIT" default:"20"`

	// MaxLimit caps the page size a caller may request (default: 500)
	MaxLimit int `env:"PAGINATION_MAX_LIMIT" default:"500"`
}

// ExportConfig holds report export settings.
type ExportConfig struct {
	// MaxConcurrent is the maximum number of exports rendering at once (default: 4)
	MaxConcurrent int `env:"EXPORT_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for an export slot (default: 10s)
	MaxWaitTime time.Duration `env:"EXPORT_MAX_WAIT_TIME" default:"10s"`

	// Timeout is the maximum duration of a single export (default: 2m)
	Timeout time.Duration `env:"EXPORT_TIMEOUT" default:"2m"`

	// DatePrefix prepends the current date to export file names (default: true)
	DatePrefix bool `env:"EXPORT_DATE_PREFIX" default:"true"`

	// Title is printed at the top of PDF and print reports (default: Sales Admin)
	Title string `env:"EXPORT_REPORT_TITLE" default:"Sales Admin"`
}

// RateLimitConfig holds rate limiting settings per client IP.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// Burst is the number of requests allowed above the steady rate (default: 50)
	Burst int `env:"RATE_LIMIT_BURST" default:"50"`

	// ExportLimit is requests per minute for export requests (default: 20)
	ExportLimit int `env:"RATE_LIMIT_EXPORT" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey enables API key authentication on /api routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`

	// BcryptCost is the cost used to hash user passwords (default: 10)
	BcryptCost int `env:"BCRYPT_COST" default:"10"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MigrateConfig holds schema migration settings.
type MigrateConfig struct {
	// OnStart applies pending migrations before the server starts (default: false)
	OnStart bool `env:"MIGRATE_ON_START" default:"false"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
