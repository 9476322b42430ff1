package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "data/SavedData", cfg.SavedDir)
	assert.Equal(t, 30, cfg.WindowDays)
	assert.Equal(t, UIWeb, cfg.UI)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.OpenBrowser)
	assert.Equal(t, "logs/app.log", cfg.LogFile)
	assert.True(t, cfg.LogStdout)
}

func TestLoadFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("STEPS_UI=TUI\nSTEPS_PORT=9090\nSTEPS_OPEN_BROWSER=false\n"), 0644))
	// godotenv does not override variables that are already set
	t.Setenv("STEPS_UI", "")
	t.Setenv("STEPS_PORT", "")
	t.Setenv("STEPS_OPEN_BROWSER", "")
	os.Unsetenv("STEPS_UI")
	os.Unsetenv("STEPS_PORT")
	os.Unsetenv("STEPS_OPEN_BROWSER")

	cfg, err := Load(context.Background(), envFile)
	require.NoError(t, err)

	assert.Equal(t, UITUI, cfg.UI)
	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.OpenBrowser)
	assert.False(t, cfg.LogStdout, "tui mode keeps logs off stdout")
}

func TestLoadRejectsBadValues(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("STEPS_UI", "gtk")
	_, err := Load(context.Background(), missing)
	assert.Error(t, err)

	t.Setenv("STEPS_UI", "web")
	t.Setenv("STEPS_WINDOW_DAYS", "0")
	_, err = Load(context.Background(), missing)
	assert.Error(t, err)
}
