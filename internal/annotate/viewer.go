package annotate

import (
	"image"
	"image/color"
	"time"

	"snapmark/internal/window"
)

const (
	DoubleClickInterval = 300 * time.Millisecond
	DoubleClickSlop     = 4
)

// Host is the window side of a viewer.
type Host interface {
	Present(frame *image.RGBA)
	// Place moves and resizes the window (screen coordinates).
	Place(r image.Rectangle)
	Bounds() image.Rectangle
	Close()
	// Copy publishes a composited frame to the clipboard.
	Copy(frame *image.RGBA)
}

// Viewer turns window events into session operations.
type Viewer struct {
	session *Session
	host    Host

	moving     bool
	grabOffset image.Point

	lastClick    time.Time
	lastClickPos image.Point

	closed bool
}

func NewViewer(img *image.RGBA, highlight color.Color, host Host) *Viewer {
	return &Viewer{session: NewSession(img, highlight), host: host}
}

func (v *Viewer) Session() *Session { return v.session }

func (v *Viewer) Closed() bool { return v.closed }

func (v *Viewer) Frame() *image.RGBA { return v.session.Frame() }

func (v *Viewer) Handle(e window.Event) {
	if v.closed {
		return
	}
	switch e.Kind {
	case window.Press:
		v.press(e)
	case window.Move:
		v.move(e)
	case window.Release:
		v.release(e)
	case window.Wheel:
		v.wheel(e.Wheel)
	case window.KeyPress:
		if e.Key == window.KeyEscape {
			v.close()
		}
	case window.Repaint:
		v.host.Present(v.session.Frame())
	case window.Closed:
		v.closed = true
	}
}

func (v *Viewer) press(e window.Event) {
	switch e.Button {
	case window.ButtonLeft:
		if v.isDoubleClick(e) {
			v.close()
			return
		}
		v.lastClick, v.lastClickPos = e.Time, e.Pos
		v.moving = true
		v.grabOffset = e.Pos
	case window.ButtonRight:
		v.session.BeginStroke(e.Pos)
	}
}

func (v *Viewer) move(e window.Event) {
	if v.moving {
		size := v.host.Bounds().Size()
		topLeft := e.Screen.Sub(v.grabOffset)
		v.host.Place(image.Rectangle{Min: topLeft, Max: topLeft.Add(size)})
	}
	if frame := v.session.UpdateStroke(e.Pos); frame != nil {
		v.host.Present(frame)
	}
}

func (v *Viewer) release(e window.Event) {
	switch e.Button {
	case window.ButtonLeft:
		v.moving = false
	case window.ButtonRight:
		frame, ok := v.session.CommitStroke(e.Pos)
		if !ok {
			return
		}
		v.host.Present(frame)
		v.host.Copy(frame)
	}
}

func (v *Viewer) wheel(notches int) {
	if !v.session.Zoom(notches) {
		return
	}
	origin := v.host.Bounds().Min
	v.host.Place(image.Rectangle{Min: origin, Max: origin.Add(v.session.Size())})
	v.host.Present(v.session.Frame())
}

func (v *Viewer) isDoubleClick(e window.Event) bool {
	if v.lastClick.IsZero() || e.Time.Sub(v.lastClick) > DoubleClickInterval {
		return false
	}
	d := e.Pos.Sub(v.lastClickPos)
	return abs(d.X) <= DoubleClickSlop && abs(d.Y) <= DoubleClickSlop
}

func (v *Viewer) close() {
	v.closed = true
	v.moving = false
	v.session.CancelStroke()
	v.host.Close()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
