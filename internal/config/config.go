package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvCaptureHotkey  = "SNAPMARK_CAPTURE_HOTKEY"
	EnvPreviewHotkey  = "SNAPMARK_PREVIEW_HOTKEY"
	EnvCaptureDelayMs = "SNAPMARK_CAPTURE_DELAY_MS"
	EnvHighlightColor = "SNAPMARK_HIGHLIGHT_COLOR"
	EnvEnableTray     = "SNAPMARK_ENABLE_TRAY"
	EnvEnablePreview  = "SNAPMARK_ENABLE_PREVIEW"
	EnvPreviewAddr    = "SNAPMARK_PREVIEW_ADDR"
	EnvFileLogging    = "SNAPMARK_FILE_LOGGING"
)

// LoadFrom reads the JSON config at configPath, falling back to defaults when
// the file does not exist, then applies .env and environment overrides.
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	if envPath := resolveEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("Failed to load %s: %v", envPath, err)
		}
	}
	applyEnv(cfg)

	if _, err := ParseColor(cfg.HighlightColor); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnsureFile writes the defaults to configPath when no file exists there, so
// users have a file to edit. It reports whether a file was created.
func EnsureFile(configPath string) (bool, error) {
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := SaveTo(configPath, Default()); err != nil {
		return false, fmt.Errorf("write default config: %w", err)
	}
	return true, nil
}

func SaveTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Dir is the per-user directory holding config.json and the optional log file.
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "snapmark")
}

func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// ParseColor accepts #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	envPath := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(envPath); err == nil {
		return envPath
	}
	return ""
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvCaptureHotkey)); v != "" {
		cfg.CaptureHotkey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPreviewHotkey)); v != "" {
		cfg.PreviewHotkey = v
	}
	if v := os.Getenv(EnvCaptureDelayMs); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CaptureDelayMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvHighlightColor)); v != "" {
		cfg.HighlightColor = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPreviewAddr)); v != "" {
		cfg.PreviewAddr = v
	}
	setBool(&cfg.EnableTray, EnvEnableTray)
	setBool(&cfg.EnablePreview, EnvEnablePreview)
	setBool(&cfg.EnableFileLogging, EnvFileLogging)
}

func setBool(dst *bool, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}
