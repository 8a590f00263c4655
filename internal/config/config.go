package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAuditSchedule runs the audit nightly at 03:00 (seconds field first)
const DefaultAuditSchedule = "0 0 3 * * *"

type Config struct {
	Environment string
	DatabaseURL string
	TablePrefix string
	// Logging
	LogLevel    slog.Level
	LogDir      string // empty disables file logging
	LogMaxFiles int
	// Seeding
	SeedFixture string
	// Consistency audit
	AuditSchedule string        // six-field cron spec, seconds first
	AuditTimeout  time.Duration // 0 disables the limit
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Environment:   env,
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		TablePrefix:   getTablePrefix(env),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", getDefaultLogLevel(env))),
		LogDir:        getEnv("LOG_DIR", ""),
		LogMaxFiles:   getEnvInt("LOG_MAX_FILES", 10),
		SeedFixture:   getEnv("SEED_FIXTURE", ""), // empty: embedded demo fixture
		AuditSchedule: getEnv("AUDIT_SCHEDULE", DefaultAuditSchedule),
		AuditTimeout:  getEnvDuration("AUDIT_TIMEOUT", 10*time.Minute),
	}
}

// IsProduction reports whether destructive tooling must be refused
func (c *Config) IsProduction() bool {
	return c.Environment == "prod"
}

// getDefaultLogLevel returns the default log level based on environment
func getDefaultLogLevel(env string) string {
	if env == "dev" {
		return "debug"
	}
	return "info"
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}
