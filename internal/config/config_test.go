package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantEnv    string
		wantPrefix string
		wantLevel  slog.Level
		wantProd   bool
	}{
		{
			name:       "defaults to dev",
			env:        map[string]string{},
			wantEnv:    "dev",
			wantPrefix: "dev_",
			wantLevel:  slog.LevelDebug,
		},
		{
			name:       "test environment",
			env:        map[string]string{"ENVIRONMENT": "test"},
			wantEnv:    "test",
			wantPrefix: "test_",
			wantLevel:  slog.LevelInfo,
		},
		{
			name:       "prod environment",
			env:        map[string]string{"ENVIRONMENT": "prod", "LOG_LEVEL": "warn"},
			wantEnv:    "prod",
			wantPrefix: "prod_",
			wantLevel:  slog.LevelWarn,
			wantProd:   true,
		},
		{
			name:       "table prefix override",
			env:        map[string]string{"ENVIRONMENT": "test", "TABLE_PREFIX": "ci42_"},
			wantEnv:    "test",
			wantPrefix: "ci42_",
			wantLevel:  slog.LevelInfo,
		},
		{
			name:       "unknown log level falls back to info",
			env:        map[string]string{"LOG_LEVEL": "chatty"},
			wantEnv:    "dev",
			wantPrefix: "dev_",
			wantLevel:  slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"ENVIRONMENT", "TABLE_PREFIX", "LOG_LEVEL", "DATABASE_URL", "LOG_DIR", "LOG_MAX_FILES", "SEED_FIXTURE", "AUDIT_SCHEDULE", "AUDIT_TIMEOUT"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := Load()
			assert.Equal(t, tt.wantEnv, cfg.Environment)
			assert.Equal(t, tt.wantPrefix, cfg.TablePrefix)
			assert.Equal(t, tt.wantLevel, cfg.LogLevel)
			assert.Equal(t, tt.wantProd, cfg.IsProduction())
			assert.Equal(t, 10, cfg.LogMaxFiles)
			assert.Empty(t, cfg.SeedFixture)
			assert.Equal(t, DefaultAuditSchedule, cfg.AuditSchedule)
			assert.Equal(t, 10*time.Minute, cfg.AuditTimeout)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("LOG_MAX_FILES", "3")
	assert.Equal(t, 3, getEnvInt("LOG_MAX_FILES", 10))

	t.Setenv("LOG_MAX_FILES", "zero")
	assert.Equal(t, 10, getEnvInt("LOG_MAX_FILES", 10))

	t.Setenv("LOG_MAX_FILES", "-2")
	assert.Equal(t, 10, getEnvInt("LOG_MAX_FILES", 10))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("AUDIT_TIMEOUT", "90s")
	assert.Equal(t, 90*time.Second, getEnvDuration("AUDIT_TIMEOUT", time.Minute))

	t.Setenv("AUDIT_TIMEOUT", "0s")
	assert.Equal(t, time.Duration(0), getEnvDuration("AUDIT_TIMEOUT", time.Minute))

	t.Setenv("AUDIT_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("AUDIT_TIMEOUT", time.Minute))

	t.Setenv("AUDIT_TIMEOUT", "-5m")
	assert.Equal(t, time.Minute, getEnvDuration("AUDIT_TIMEOUT", time.Minute))
}
