package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port     string
	AppEnv   string
	LogLevel string

	// Database configuration
	DBType               string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost               string
	DBPort               string
	DBDatabase           string
	DBAppUser            string // catalog pool, read-only grants are enough
	DBAppPassword        string
	DBAppConnectionLimit int
	DBUser               string // personal data pool
	DBPassword           string
	DBConnectionLimit    int
	DBAutoMigrate        bool
	DBLogLevel           string

	// Authorizer configuration
	AuthzURL         string
	AuthzClientID    string
	AuthzRedirectURL string

	// Session gate
	SessionCookie    string
	SessionRevokeTTL time.Duration
	SignInPath       string

	CORSOrigins   string
	EnableAPIDocs bool
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "3000"),
		AppEnv:               normalizeEnv(getEnv("APP_ENV", "production")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DBType:               getEnv("DB_TYPE", "postgres"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBDatabase:           getEnv("DB_DATABASE", ""),
		DBAppUser:            getEnv("DB_APP_USER", ""),
		DBAppPassword:        getEnv("DB_APP_PASSWORD", ""),
		DBAppConnectionLimit: getEnvAsInt("DB_APP_CONNECTION_LIMIT", 5),
		DBUser:               getEnv("DB_USER", ""),
		DBPassword:           getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:    getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBAutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		DBLogLevel:           getEnv("DB_LOG_LEVEL", "warn"),
		AuthzURL:             getEnv("AUTHZ_URL", ""),
		AuthzClientID:        getEnv("AUTHZ_CLIENT_ID", ""),
		AuthzRedirectURL:     getEnv("AUTHZ_REDIRECT_URL", ""),
		SessionCookie:        getEnv("SESSION_COOKIE", "cookie_session"),
		SessionRevokeTTL:     getEnvAsDuration("SESSION_REVOKE_TTL", 24*time.Hour),
		SignInPath:           getEnv("SIGN_IN_PATH", "/auth"),
		CORSOrigins:          getEnv("CORS_ORIGINS", "*"),
		EnableAPIDocs:        getEnvBool("ENABLE_API_DOCS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if c.DBType != "sqlite" {
		if c.DBAppUser == "" {
			return fmt.Errorf("DB_APP_USER is required")
		}
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required")
		}
	}
	if c.AuthzURL == "" {
		return fmt.Errorf("AUTHZ_URL is required")
	}
	if c.AuthzClientID == "" {
		return fmt.Errorf("AUTHZ_CLIENT_ID is required")
	}
	if c.SessionRevokeTTL <= 0 {
		return fmt.Errorf("SESSION_REVOKE_TTL must be positive")
	}
	return nil
}

// DocsEnabled reports whether the swagger UI should be mounted
func (c *Config) DocsEnabled() bool {
	return c != nil && (c.EnableAPIDocs || c.AppEnv == "development")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
