// Package selector implements the region selection overlay: a dimmed, frozen
// copy of the virtual screen on which the user drags a rubber band.
package selector

import (
	"image"
	"image/color"
	"image/draw"

	"snapmark/internal/geom"
	"snapmark/internal/window"
)

var (
	// Dim is drawn over the backdrop outside the selection.
	Dim = color.RGBA{A: 51}
	// Outline is the 1px rubber band border.
	Outline = color.RGBA{R: 0x00, G: 0x7a, B: 0xcc, A: 0xff}
)

// Host is the window side of an overlay.
type Host interface {
	Present(frame *image.RGBA)
	Hide()
	Close()
	// Capture is called once the selection is final, with the rectangle in
	// screen coordinates. The overlay is already hidden at that point.
	Capture(r image.Rectangle)
}

// Overlay tracks one selection gesture.
type Overlay struct {
	origin   image.Point
	backdrop *image.RGBA
	dimmed   *image.RGBA
	drag     geom.Drag
	host     Host
	done     bool
}

// New returns an overlay covering bounds (screen coordinates). backdrop is a
// screenshot of bounds; nil gives a plain dimmed surface.
func New(bounds image.Rectangle, backdrop *image.RGBA, host Host) *Overlay {
	size := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	if backdrop == nil {
		backdrop = image.NewRGBA(size)
	}
	dimmed := image.NewRGBA(size)
	draw.Draw(dimmed, size, backdrop, backdrop.Bounds().Min, draw.Src)
	draw.Draw(dimmed, size, image.NewUniform(Dim), image.Point{}, draw.Over)

	return &Overlay{
		origin:   bounds.Min,
		backdrop: backdrop,
		dimmed:   dimmed,
		host:     host,
	}
}

func (o *Overlay) Done() bool { return o.done }

// Selection is the current rubber band in overlay-local coordinates.
func (o *Overlay) Selection() image.Rectangle {
	if !o.drag.Active() {
		return image.Rectangle{}
	}
	return o.drag.Rect()
}

func (o *Overlay) Handle(e window.Event) {
	if o.done {
		return
	}
	switch e.Kind {
	case window.Press:
		o.drag.Begin(e.Pos)
		o.host.Present(o.Frame())
	case window.Move:
		if o.drag.Active() {
			o.drag.Update(e.Pos)
			o.host.Present(o.Frame())
		}
	case window.Release:
		if !o.drag.Active() {
			return
		}
		r := o.drag.End(e.Pos)
		o.done = true
		o.host.Present(o.dimmed)
		o.host.Hide()
		o.host.Capture(r.Add(o.origin))
	case window.KeyPress:
		if e.Key == window.KeyEscape {
			o.done = true
			o.drag.Cancel()
			o.host.Close()
		}
	case window.Repaint:
		o.host.Present(o.Frame())
	case window.Closed:
		o.done = true
	}
}

// Frame renders the dimmed backdrop with the selection shown undimmed and
// outlined.
func (o *Overlay) Frame() *image.RGBA {
	frame := image.NewRGBA(o.dimmed.Bounds())
	copy(frame.Pix, o.dimmed.Pix)

	sel := o.Selection().Intersect(frame.Bounds())
	if sel.Empty() {
		return frame
	}
	draw.Draw(frame, sel, o.backdrop, o.backdrop.Bounds().Min.Add(sel.Min), draw.Src)
	strokeRect(frame, sel, Outline)
	return frame
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetRGBA(x, r.Min.Y, c)
		dst.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetRGBA(r.Min.X, y, c)
		dst.SetRGBA(r.Max.X-1, y, c)
	}
}
