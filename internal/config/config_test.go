package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "blueexport_test")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017", cfg.Database.URL)
	require.Equal(t, "blueexport_test", cfg.Database.Name)
	require.Equal(t, 3*time.Second, cfg.Database.Timeout)
	require.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
}

func TestLoadConfig_DefaultsWithoutDatabase(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_NAME", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_CONNECT_ATTEMPTS", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Empty(t, cfg.Database.URL)
	require.Empty(t, cfg.Database.Name)
	require.Equal(t, "8000", cfg.Server.Port)
	require.Equal(t, 10*time.Second, cfg.Database.Timeout)
	require.Equal(t, 1, cfg.Database.ConnectAttempts)
	require.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	require.False(t, cfg.Server.IsProduction())
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATABASE_NAME=from_file\nSERVER_ENVIRONMENT=production\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	t.Setenv("DATABASE_NAME", "")
	t.Setenv("SERVER_ENVIRONMENT", "")
	// godotenv never overrides variables that are already present
	require.NoError(t, os.Unsetenv("DATABASE_NAME"))
	require.NoError(t, os.Unsetenv("SERVER_ENVIRONMENT"))
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_NAME")
		os.Unsetenv("SERVER_ENVIRONMENT")
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "from_file", cfg.Database.Name)
	require.True(t, cfg.Server.IsProduction())
}

func TestLoadConfig_LogLevelFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
}
