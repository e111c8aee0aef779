//go:build !windows

package native

import (
	"image"
	"log"
)

func EnableDPIAwareness() error { return nil }

// Find returns a window whose chrome calls do nothing; the toolkit's own
// window decorations and placement apply.
func Find(string) (Window, error) { return noopWindow{}, nil }

func CursorPos() (image.Point, bool) { return image.Point{}, false }

// Alert has no dialog here; the message only goes to the log.
func Alert(title, message string) {
	log.Printf("%s: %s", title, message)
}
