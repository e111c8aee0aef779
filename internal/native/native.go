// Package native adjusts the chrome of toolkit windows (frameless, topmost,
// placement) and shows alert dialogs. Windows is the only platform with real
// chrome support; elsewhere the calls are no-ops.
package native

import (
	"errors"
	"image"
)

var ErrWindowNotFound = errors.New("window not found")

// Window is a native handle to a toolkit window.
type Window interface {
	// Float removes the frame and keeps the window above others.
	Float() error
	// SetBounds moves and resizes the window in screen coordinates.
	SetBounds(r image.Rectangle) error
	// Hide unmaps the window. It reports false when unsupported.
	Hide() bool
	Focus()
}

type noopWindow struct{}

func (noopWindow) Float() error                    { return nil }
func (noopWindow) SetBounds(image.Rectangle) error { return nil }
func (noopWindow) Hide() bool                      { return false }
func (noopWindow) Focus()                          {}
