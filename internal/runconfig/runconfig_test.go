package runconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmatch/core/internal/runconfig"
)

func TestLoadDefaultsWhenNothingElseSet(t *testing.T) {
	var cfg runconfig.Config
	require.NoError(t, runconfig.Load("", &cfg))

	assert.Equal(t, 200, cfg.AttemptBudget)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "none", cfg.OTelExporter)
	assert.InDelta(t, 1.0/3, cfg.Weights.Energy, 1e-9)
}

func TestLoadFlagValuesWinOverDefaults(t *testing.T) {
	cfg := runconfig.Config{AttemptBudget: 50, LogLevel: "debug"}
	require.NoError(t, runconfig.Load("", &cfg))

	assert.Equal(t, 50, cfg.AttemptBudget)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadYAMLFileFillsUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\nattempt_budget: 77\n"), 0o644))

	var cfg runconfig.Config
	require.NoError(t, runconfig.Load(path, &cfg))

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 77, cfg.AttemptBudget)
}

func TestLoadFlagOverridesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o644))

	cfg := runconfig.Config{LogLevel: "error"}
	require.NoError(t, runconfig.Load(path, &cfg))

	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadMissingYAMLFileIsNotAnError(t *testing.T) {
	var cfg runconfig.Config
	err := runconfig.Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	assert.NoError(t, err)
}
