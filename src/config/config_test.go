package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"FONT_FAMILY", "FONT_SIZE", "SURFACE_WIDTH", "SURFACE_HEIGHT", "VSYNC", "DEMO_DURATION_SEC", "STOP_HOTKEY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Tahoma", cfg.FontFamily)
	assert.Equal(t, 18.0, cfg.FontSize)
	assert.Equal(t, 1920, cfg.SurfaceWidth)
	assert.Equal(t, 1080, cfg.SurfaceHeight)
	assert.Equal(t, VSyncDefault, cfg.VSync)
	assert.Equal(t, 15, cfg.DemoDurationSec)
	assert.Equal(t, "Ctrl+Alt+Q", cfg.StopHotkey)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FONT_FAMILY", "Consolas")
	t.Setenv("FONT_SIZE", "22.5")
	t.Setenv("SURFACE_WIDTH", "2560")
	t.Setenv("SURFACE_HEIGHT", "-4")
	t.Setenv("VSYNC", "ON")
	t.Setenv("REQUIRE_VSYNC", "true")
	t.Setenv("ENABLE_FILE_LOGGING", "true")
	t.Setenv("STOP_HOTKEY", "Ctrl+Shift+X")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Consolas", cfg.FontFamily)
	assert.Equal(t, 22.5, cfg.FontSize)
	assert.Equal(t, 2560, cfg.SurfaceWidth)
	assert.Equal(t, 1080, cfg.SurfaceHeight, "non-positive values fall back")
	assert.Equal(t, VSyncOn, cfg.VSync)
	assert.True(t, cfg.RequireVSync)
	assert.True(t, cfg.EnableFileLogging)
	assert.Equal(t, "Ctrl+Shift+X", cfg.StopHotkey)
}

func TestLoadDotenvFile(t *testing.T) {
	t.Setenv("FONT_FAMILY", "")
	t.Setenv("LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "overlay.env")
	require.NoError(t, os.WriteFile(path, []byte("FONT_FAMILY=Verdana\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("FONT_FAMILY")
		os.Unsetenv("LOG_LEVEL")
	})

	// godotenv.Load does not override variables that are already set,
	// so clear them for the file to take effect.
	os.Unsetenv("FONT_FAMILY")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := LoadWithOptions(LoadOptions{EnvPathOverride: path})
	require.NoError(t, err)
	assert.Equal(t, "Verdana", cfg.FontFamily)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingOverrideFile(t *testing.T) {
	_, err := LoadWithOptions(LoadOptions{EnvPathOverride: filepath.Join(t.TempDir(), "missing.env")})
	assert.Error(t, err)
}

func TestLoadOptionsWin(t *testing.T) {
	t.Setenv("FONT_FAMILY", "Consolas")
	t.Setenv("VSYNC", "on")
	t.Setenv("DEMO_DURATION_SEC", "30")

	cfg, err := LoadWithOptions(LoadOptions{FontFamily: "Arial", FontSize: 12, VSyncOverride: "off", DurationOverride: 5})
	require.NoError(t, err)
	assert.Equal(t, "Arial", cfg.FontFamily)
	assert.Equal(t, 12.0, cfg.FontSize)
	assert.Equal(t, VSyncOff, cfg.VSync)
	assert.Equal(t, 5, cfg.DemoDurationSec)
}

func TestResolveVSync(t *testing.T) {
	assert.Equal(t, VSyncOn, resolveVSync(" true "))
	assert.Equal(t, VSyncOff, resolveVSync("0"))
	assert.Equal(t, VSyncDefault, resolveVSync("adaptive"))
	assert.Equal(t, VSyncDefault, resolveVSync(""))
}
