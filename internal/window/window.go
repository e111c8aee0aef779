// Package window defines the toolkit-neutral surface and input event types
// shared by the controllers, the UI loop and the shiny toolkit.
package window

import (
	"image"
	"time"
)

type Kind int

const (
	KindLauncher Kind = iota
	KindOverlay
	KindViewer
)

func (k Kind) String() string {
	switch k {
	case KindLauncher:
		return "launcher"
	case KindOverlay:
		return "overlay"
	case KindViewer:
		return "viewer"
	}
	return "unknown"
}

type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

type Key int

const (
	KeyNone Key = iota
	KeyEscape
)

type EventKind int

const (
	Press EventKind = iota
	Release
	Move
	Wheel
	KeyPress
	Repaint
	Closed
)

// Event is a pointer, keyboard or lifecycle event delivered to a window.
type Event struct {
	Kind   EventKind
	Button Button
	// Pos is window-local, Screen is the same point in screen coordinates.
	Pos    image.Point
	Screen image.Point
	// Wheel is +1 per notch away from the user, -1 per notch towards.
	Wheel int
	Key   Key
	Time  time.Time
}

// Spec describes a window to open. Bounds are in screen coordinates; ID is
// unique per window and is echoed back with every event.
type Spec struct {
	ID     string
	Kind   Kind
	Title  string
	Bounds image.Rectangle
}

// Surface is an open native window.
type Surface interface {
	// Present replaces the window contents with frame.
	Present(frame *image.RGBA)
	// SetBounds moves and resizes the window (screen coordinates).
	SetBounds(r image.Rectangle)
	Bounds() image.Rectangle
	// Hide removes the window from the screen without destroying its state.
	Hide()
	// Close destroys the window. A Closed event follows.
	Close()
}

// Toolkit opens native windows. sink is called from the window's own pump
// goroutine and must not touch UI state directly.
type Toolkit interface {
	Open(spec Spec, sink func(Event)) (Surface, error)
}
