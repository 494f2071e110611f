// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
	Business BusinessConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// Node distinguishes id generators of instances sharing a database.
	Node int64
	// DraftTTL is how long an untouched draft is kept in memory.
	DraftTTL time.Duration
}

// DatabaseConfig selects the gorm dialect and connection.
type DatabaseConfig struct {
	Driver string // sqlite or postgres
	DSN    string
	Debug  bool
	Seed   bool
}

// AuthConfig holds session settings.
type AuthConfig struct {
	SessionSecret string
	// Required gates the API behind a login.
	Required     bool
	SecureCookie bool
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
	// Mode is "development" or "production".
	Mode       string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// BusinessConfig describes the supplier raising invoices.
type BusinessConfig struct {
	Name  string
	GSTIN string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLiteDSN = "file::memory:?cache=shared"
	devSessionSecret = "dev-insecure-session-secret-change-me"
)

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	driver := getEnv("DB_DRIVER", DriverSQLite)
	dsn := getEnv("DB_DSN", "")
	if dsn == "" && driver == DriverSQLite {
		dsn = defaultSQLiteDSN
	}
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			Node:         cast.ToInt64(getEnv("NODE_ID", "1")),
			DraftTTL:     getEnvDuration("DRAFT_TTL", 24*time.Hour),
		},
		Database: DatabaseConfig{
			Driver: driver,
			DSN:    dsn,
			Debug:  getEnvBool("DB_DEBUG", false),
			Seed:   getEnvBool("DB_SEED", false),
		},
		Auth: AuthConfig{
			SessionSecret: getEnv("SESSION_SECRET", devSessionSecret),
			Required:      getEnvBool("AUTH_REQUIRED", true),
			SecureCookie:  getEnvBool("SESSION_SECURE", false),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Mode:       getEnv("LOG_MODE", "development"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 64),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 7),
		},
		Business: BusinessConfig{
			Name:  getEnv("BUSINESS_NAME", "My Business"),
			GSTIN: getEnv("BUSINESS_GSTIN", ""),
		},
	}
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required for driver %s", c.Database.Driver)
	}
	if len(c.Auth.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 bytes")
	}
	return nil
}

// UsesDevSecret reports whether the built-in session secret is in use.
func (c *Config) UsesDevSecret() bool {
	return c.Auth.SessionSecret == devSessionSecret
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := cast.ToIntE(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool accepts anything strconv.ParseBool does; unparsable values fall back to the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := cast.ToBoolE(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("30s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if n, err := cast.ToIntE(value); err == nil {
		return time.Duration(n) * time.Second
	}
	if d, err := cast.ToDurationE(value); err == nil {
		return d
	}
	return defaultValue
}
