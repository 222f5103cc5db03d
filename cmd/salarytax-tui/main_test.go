package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/salarytax/internal/config"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvDataFile, config.EnvRegimeFile, config.EnvDefaultRegime, config.EnvDebug, config.EnvPayslipDir} {
		t.Setenv(k, "")
	}
}

func TestSetup(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--data", filepath.Join(dir, "employees.csv")}))

	_, closer, err := setup(cmd)
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}

func TestSetup_UnknownDefaultRegime(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.EnvDefaultRegime, "flat")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--memory"}))

	_, _, err := setup(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `default regime "flat"`)
}

func TestSetup_DebugLogsToFile(t *testing.T) {
	isolateEnv(t)
	logPath := filepath.Join(t.TempDir(), "debug.log")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--memory", "--debug", "--log", logPath}))

	_, closer, err := setup(cmd)
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "default regime=new")
}
