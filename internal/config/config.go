// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. A .env file next to the binary is loaded first when present;
// variables already set in the process environment always win.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration. Populated from environment
// variables at startup and read-only afterwards. Passed to other packages
// via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL, also the only allowed CORS origin.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	Mail      MailConfig
	Database  DatabaseConfig
	AI        AIConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// MailConfig holds SMTP transport settings. Server empty means mail is
// disabled and every send reports mail.ErrNotConfigured.
type MailConfig struct {
	Server   string
	Port     int
	UseTLS   bool // STARTTLS after connect.
	UseSSL   bool // Implicit TLS (port 465 typical). Takes precedence over UseTLS.
	Username string
	Password string

	// DefaultSender is the From address. Falls back to Username.
	DefaultSender string
}

// Enabled reports whether a mail server is configured.
func (m MailConfig) Enabled() bool {
	return m.Server != ""
}

// Addr returns the host:port of the SMTP server.
func (m MailConfig) Addr() string {
	return net.JoinHostPort(m.Server, strconv.Itoa(m.Port))
}

// OperatorAddress is the inbox that receives site notifications.
func (m MailConfig) OperatorAddress() string {
	return m.Username
}

// DatabaseConfig holds relational database connection parameters. Individual
// fields are read from PG* variables first and DB_* variables second, so the
// same .env works with libpq tooling. If DATABASE_URL is set, it takes
// precedence over the individual fields.
type DatabaseConfig struct {
	// Driver selects the SQL dialect: "postgres" (default), "mysql" or "sqlite".
	Driver string

	Name     string
	User     string
	Password string
	Host     string
	Port     int

	// SSLMode is passed to Postgres as sslmode (default: "disable").
	SSLMode string

	// ConnectTimeout bounds opening and pinging a connection.
	ConnectTimeout time.Duration

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string
}

// Configured reports whether enough settings exist to attempt a connection.
func (d DatabaseConfig) Configured() bool {
	return d.dsnOverride != "" || d.Name != ""
}

// DSN returns the driver-specific connection string.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}

	switch d.Driver {
	case DriverMySQL:
		cfg := mysql.NewConfig()
		cfg.User = d.User
		cfg.Passwd = d.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
		cfg.DBName = d.Name
		cfg.ParseTime = true
		cfg.Timeout = d.ConnectTimeout
		return cfg.FormatDSN()

	case DriverSQLite:
		// Name is the database file path, e.g. "karlab.db" or ":memory:".
		return d.Name

	default:
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
			Path:   "/" + d.Name,
		}
		if d.User != "" {
			if d.Password != "" {
				u.User = url.UserPassword(d.User, d.Password)
			} else {
				u.User = url.User(d.User)
			}
		}
		q := url.Values{}
		q.Set("sslmode", d.SSLMode)
		if d.ConnectTimeout > 0 {
			q.Set("connect_timeout", strconv.Itoa(int(d.ConnectTimeout.Seconds())))
		}
		u.RawQuery = q.Encode()
		return u.String()
	}
}

// AIConfig holds the OpenAI-compatible chat completion settings. An empty
// APIKey disables the provider and the chat endpoint answers with the
// canned fallback reply.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Enabled reports whether an API key is configured.
func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

// RedisConfig holds Redis connection parameters. Redis is optional; when URL
// is empty the rate limiter keeps its counters in memory.
type RedisConfig struct {
	URL string
}

// RateLimitConfig bounds POST requests per client IP.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads configuration from the .env file (if any) and the environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit .env path. A missing file is not an error.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	mailUser := getEnv("MAIL_USERNAME", "")

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		Mail: MailConfig{
			Server:        getEnv("MAIL_SERVER", ""),
			Port:          getEnvInt("MAIL_PORT", 587),
			UseTLS:        getEnvBool("MAIL_USE_TLS", true),
			UseSSL:        getEnvBool("MAIL_USE_SSL", false),
			Username:      mailUser,
			Password:      getEnv("MAIL_PASSWORD", ""),
			DefaultSender: firstEnv(mailUser, "MAIL_DEFAULT_SENDER"),
		},

		Database: DatabaseConfig{
			Driver:         strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Name:           firstEnv("", "PGDATABASE", "DB_NAME"),
			User:           firstEnv("", "PGUSER", "DB_USER"),
			Password:       firstEnv("", "PGPASSWORD", "DB_PASSWORD"),
			Host:           firstEnv("localhost", "PGHOST", "DB_HOST"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
			dsnOverride:    getEnv("DATABASE_URL", ""),
		},

		AI: AIConfig{
			APIKey:  firstEnv("", "AIMLAPI_API_KEY", "OPENAI_API_KEY"),
			BaseURL: strings.TrimRight(firstEnv("https://api.aimlapi.com/v1", "AIMLAPI_BASE_URL", "OPENAI_BASE_URL"), "/"),
			Model:   firstEnv("gpt-4", "AIMLAPI_MODEL", "OPENAI_MODEL"),
			Timeout: getEnvDuration("AI_TIMEOUT", 30*time.Second),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},

		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 20),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	defaultPort := 5432
	if cfg.Database.Driver == DriverMySQL {
		defaultPort = 3306
	}
	port, err := strconv.Atoi(firstEnv(strconv.Itoa(defaultPort), "PGPORT", "DB_PORT"))
	if err != nil {
		return nil, fmt.Errorf("invalid database port: %w", err)
	}
	cfg.Database.Port = port

	switch cfg.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	if cfg.Mail.Enabled() && cfg.Mail.Port <= 0 {
		return nil, fmt.Errorf("MAIL_PORT must be positive, got %d", cfg.Mail.Port)
	}

	if cfg.RateLimit.Requests <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", cfg.RateLimit.Requests)
	}
	if cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimit.Window)
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// firstEnv returns the first non-empty value among keys, or defaultVal.
func firstEnv(defaultVal string, keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
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

// getEnvBool reads a boolean env var ("true", "1", "yes") or returns the default.
func getEnvBool(key string, defaultVal bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal
	}
	switch strings.ToLower(val) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// getEnvDuration reads a duration env var (e.g., "30s") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
