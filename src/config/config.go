package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvPathEnvVar = "HOST_OVERLAY_ENV"

	VSyncDefault = "default"
	VSyncOn      = "on"
	VSyncOff     = "off"
)

type LoadOptions struct {
	EnvPathOverride  string
	FontFamily       string
	FontSize         float64
	VSyncOverride    string
	DurationOverride int
}

type Config struct {
	FontFamily        string
	FontSize          float64
	SurfaceWidth      int
	SurfaceHeight     int
	VSync             string
	RequireVSync      bool
	EnableFileLogging bool
	LogLevel          string
	DemoDurationSec   int
	StopHotkey        string
	FontCacheDir      string
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Sources in priority order:
	// 1) explicit override path, or .env next to the executable
	// 2) else HOST_OVERLAY_ENV as a path to a config file
	// Process environment wins over the file; LoadOptions win over both.
	envPath := strings.TrimSpace(opts.EnvPathOverride)
	if envPath == "" {
		envPath = resolveEnvPath()
	}
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && opts.EnvPathOverride != "" {
			return nil, err
		}
	}

	cfg := &Config{
		FontFamily:        getEnvWithDefault("FONT_FAMILY", "Tahoma"),
		FontSize:          getFloat("FONT_SIZE", 18),
		SurfaceWidth:      getPositiveInt("SURFACE_WIDTH", 1920),
		SurfaceHeight:     getPositiveInt("SURFACE_HEIGHT", 1080),
		VSync:             resolveVSync(os.Getenv("VSYNC")),
		RequireVSync:      getBool("REQUIRE_VSYNC"),
		EnableFileLogging: getBool("ENABLE_FILE_LOGGING"),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		DemoDurationSec:   getPositiveInt("DEMO_DURATION_SEC", 15),
		StopHotkey:        getEnvWithDefault("STOP_HOTKEY", "Ctrl+Alt+Q"),
		FontCacheDir:      os.Getenv("FONT_CACHE_DIR"),
	}

	if family := strings.TrimSpace(opts.FontFamily); family != "" {
		cfg.FontFamily = family
	}
	if opts.FontSize > 0 {
		cfg.FontSize = opts.FontSize
	}
	if override := strings.TrimSpace(opts.VSyncOverride); override != "" {
		cfg.VSync = resolveVSync(override)
	}
	if opts.DurationOverride > 0 {
		cfg.DemoDurationSec = opts.DurationOverride
	}

	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	execDir := filepath.Dir(execPath)
	exeEnv := filepath.Join(execDir, ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(EnvPathEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func resolveVSync(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1":
		return VSyncOn
	case "off", "false", "0":
		return VSyncOff
	default:
		return VSyncDefault
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string) bool {
	return strings.ToLower(os.Getenv(key)) == "true"
}

func getPositiveInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}
