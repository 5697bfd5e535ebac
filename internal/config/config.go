package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type AppConfig struct {
	Env      Environment
	Port     string
	LogLevel string
}

type AnalyzeConfig struct {
	MaxBytes int
}

type StoreConfig struct {
	Path          string
	RetentionDays int
}

type AdminConfig struct {
	Username string
	Password string
}

type SMTPConfig struct {
	Host    string
	Port    string
	User    string
	Pass    string
	ToEmail string
}

type Config struct {
	App     AppConfig
	Analyze AnalyzeConfig
	Store   StoreConfig
	Admin   AdminConfig
	SMTP    SMTPConfig
}

// Load reads .env when present and falls back to defaults for unset keys.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	env := parseEnvironment(getEnv("APP_ENV", string(Development)))

	return &Config{
		App: AppConfig{
			Env:      env,
			Port:     getEnv("PORT", "8080"),
			LogLevel: getLogLevel(env),
		},
		Analyze: AnalyzeConfig{
			MaxBytes: getEnvInt("ANALYZE_MAX_BYTES", 100000),
		},
		Store: StoreConfig{
			Path:          getEnv("DB_PATH", "portfolio.db"),
			RetentionDays: getEnvInt("VISITOR_RETENTION_DAYS", 365),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", defaultAdminUsername),
			Password: getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		},
		SMTP: SMTPConfig{
			Host:    getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:    getEnv("SMTP_PORT", "587"),
			User:    getEnv("SMTP_USER", ""),
			Pass:    getEnv("SMTP_PASS", ""),
			ToEmail: getEnv("TO_EMAIL", ""),
		},
	}, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Analyze.MaxBytes <= 0 {
		return fmt.Errorf("ANALYZE_MAX_BYTES must be positive, got %d", c.Analyze.MaxBytes)
	}
	if c.Store.RetentionDays <= 0 {
		return fmt.Errorf("VISITOR_RETENTION_DAYS must be positive, got %d", c.Store.RetentionDays)
	}
	if c.App.Env == Production && c.UsesDefaultAdminPassword() {
		return fmt.Errorf("ADMIN_PASSWORD must be set in production")
	}
	return nil
}

// UsesDefaultAdminPassword reports whether the built-in development password
// is in effect. The username alone is not a secret.
func (c *Config) UsesDefaultAdminPassword() bool {
	return c.Admin.Password == defaultAdminPassword
}

// IsProduction reports whether APP_ENV selected production.
func (c *Config) IsProduction() bool {
	return c.App.Env == Production
}

func parseEnvironment(envStr string) Environment {
	env := Environment(strings.ToLower(envStr))

	switch env {
	case Development, Production:
		return env
	default:
		return Development
	}
}

func getLogLevel(env Environment) string {
	if env == Production {
		return getEnv("LOG_LEVEL", "info")
	}
	return getEnv("LOG_LEVEL", "debug")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
