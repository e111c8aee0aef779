package config

import "time"

type Config struct {
	CaptureHotkey     string `json:"capture_hotkey"`
	PreviewHotkey     string `json:"preview_hotkey"`
	CaptureDelayMs    int    `json:"capture_delay_ms"`
	HighlightColor    string `json:"highlight_color"`
	EnableTray        bool   `json:"enable_tray"`
	EnablePreview     bool   `json:"enable_preview"`
	PreviewAddr       string `json:"preview_addr"`
	EnableFileLogging bool   `json:"enable_file_logging"`
}

const (
	DefaultCaptureHotkey  = "Alt+<"
	DefaultPreviewHotkey  = "Alt+>"
	DefaultCaptureDelayMs = 100
	DefaultHighlightColor = "#FFFF0064"
	DefaultPreviewAddr    = "127.0.0.1:8765"
)

func Default() *Config {
	return &Config{
		CaptureHotkey:  DefaultCaptureHotkey,
		PreviewHotkey:  DefaultPreviewHotkey,
		CaptureDelayMs: DefaultCaptureDelayMs,
		HighlightColor: DefaultHighlightColor,
		EnableTray:     true,
		PreviewAddr:    DefaultPreviewAddr,
	}
}

// CaptureDelay is the pause between hiding the selection overlay and grabbing
// the screen.
func (c *Config) CaptureDelay() time.Duration {
	if c.CaptureDelayMs < 0 {
		return 0
	}
	return time.Duration(c.CaptureDelayMs) * time.Millisecond
}
