package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueexport/blueexport/backend/go-services/internal/diagnostics"
	"github.com/blueexport/blueexport/backend/go-services/pkg/logger"
)

func runDiagnose(t *testing.T, args ...string) diagnostics.Report {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_NAME", "")

	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	require.NoError(t, cmd.Run(context.Background(), append([]string{"diagnose"}, args...)))

	var rep diagnostics.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	return rep
}

func TestDiagnose_MemoryStore(t *testing.T) {
	rep := runDiagnose(t, "--database-url", "memory://", "--database-name", "exports")

	assert.Equal(t, diagnostics.StatusRunning, rep.Backend)
	assert.Equal(t, diagnostics.Connected, rep.ConnectionStatus)
	assert.Equal(t, diagnostics.StatusSet, rep.DatabaseURL)
	assert.Equal(t, diagnostics.StatusSet, rep.DatabaseName)
	assert.Empty(t, rep.Collections)
}

func TestDiagnose_NotConfigured(t *testing.T) {
	rep := runDiagnose(t)

	assert.Equal(t, diagnostics.NotConnected, rep.ConnectionStatus)
	assert.Equal(t, diagnostics.StatusNotSet, rep.DatabaseURL)
	assert.NotEmpty(t, rep.Database)
}

func TestDiagnose_LogLevelFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "diag.env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=error\nDATABASE_URL=memory://\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	logger.Init("info")
	t.Cleanup(func() { logger.Init("info") })

	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	require.NoError(t, cmd.Run(context.Background(), []string{"diagnose"}))
	assert.Equal(t, "error", logger.LevelString())
}
