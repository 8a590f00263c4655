package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupOldLogsKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"seed-2026-01-01T10-00-00.log",
		"seed-2026-01-02T10-00-00.log",
		"seed-2026-01-03T10-00-00.log",
		"seed-2026-01-04T10-00-00.log",
		"other-2026-01-01T10-00-00.log",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	require.NoError(t, cleanupOldLogs(dir, "seed", 2))

	remaining, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	for i := range remaining {
		remaining[i] = filepath.Base(remaining[i])
	}
	assert.ElementsMatch(t, []string{
		"seed-2026-01-03T10-00-00.log",
		"seed-2026-01-04T10-00-00.log",
		"other-2026-01-01T10-00-00.log",
	}, remaining)
}

func TestNewLoggerWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := &Config{LogDir: dir, LogMaxFiles: 5}

	logger, closeFn, err := NewLogger(cfg, "seed")
	require.NoError(t, err)
	logger.Info("fixture seeded", "projects", 2)
	require.NoError(t, closeFn())

	files, err := filepath.Glob(filepath.Join(dir, "seed-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"fixture seeded"`)
	assert.Contains(t, line, `"projects":2`)
}

func TestNewLoggerStdoutOnly(t *testing.T) {
	logger, closeFn, err := NewLogger(&Config{}, "seed")
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closeFn())
}
