// Package tray shows a system tray menu mirroring the launcher actions.
package tray

import "snapmark/internal/action"

// Browser is the optional browser preview.
type Browser interface {
	OpenBrowser()
}

type Options struct {
	CaptureHotkey string
	PreviewHotkey string
	// Post forwards an action to the UI loop without blocking.
	Post func(action.Action) bool
	// Browser is nil when the browser preview is disabled.
	Browser Browser
}

func tooltip(o Options) string {
	return "snapmark - " + o.CaptureHotkey + " to capture, " + o.PreviewHotkey + " to preview"
}
