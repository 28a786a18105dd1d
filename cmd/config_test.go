package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"orders/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults without an env file", func(t *testing.T) {
		cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.HTTPPort)
		assert.Equal(t, cmd.StoragePostgres, cfg.Storage)
		assert.Equal(t, 5*time.Second, cfg.CompletionDelay)
		assert.Equal(t, "* * * * * *", cfg.CompletionSchedule)
		assert.Equal(t, 100, cfg.CompletionBatchSize)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.True(t, cfg.DBAutoMigrate)
		assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	})

	t.Run("should read the environment", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("STORAGE", cmd.StorageMemory)
		t.Setenv("COMPLETION_DELAY", "250ms")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PASSWORD", "s3cret")

		cfg, err := cmd.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.HTTPPort)
		assert.Equal(t, cmd.StorageMemory, cfg.Storage)
		assert.Equal(t, 250*time.Millisecond, cfg.CompletionDelay)
		assert.Contains(t, cfg.DSN(), "db.internal:5432")
	})

	t.Run("should load values from the env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("COMPLETION_BATCH_SIZE=7\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("COMPLETION_BATCH_SIZE") })

		cfg, err := cmd.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, 7, cfg.CompletionBatchSize)
	})

	t.Run("should prefer the process environment over the env file", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=error\n"), 0o600))

		cfg, err := cmd.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("should fail on malformed values", func(t *testing.T) {
		t.Setenv("COMPLETION_DELAY", "soon")

		_, err := cmd.LoadConfig("")

		require.Error(t, err)
	})

	t.Run("should report every invalid setting", func(t *testing.T) {
		t.Setenv("STORAGE", "redis")
		t.Setenv("HTTP_PORT", "70000")
		t.Setenv("COMPLETION_BATCH_SIZE", "0")

		_, err := cmd.LoadConfig("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORAGE")
		assert.Contains(t, err.Error(), "HTTP_PORT")
		assert.Contains(t, err.Error(), "COMPLETION_BATCH_SIZE")
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("should reject a negative completion delay", func(t *testing.T) {
		cfg := cmd.Config{HTTPPort: 8080, Storage: cmd.StorageMemory, CompletionDelay: -time.Second, CompletionBatchSize: 1}

		assert.ErrorContains(t, cfg.Validate(), "COMPLETION_DELAY")
	})

	t.Run("should accept an immediate completion", func(t *testing.T) {
		cfg := cmd.Config{HTTPPort: 8080, Storage: cmd.StorageMemory, CompletionBatchSize: 1}

		assert.NoError(t, cfg.Validate())
	})
}
