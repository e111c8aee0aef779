// Package geom tracks pointer drags and turns them into normalized rectangles.
package geom

import "image"

// Drag is an in-progress pointer gesture between a start point and the most
// recent pointer position.
type Drag struct {
	start, end image.Point
	active     bool
}

func (d *Drag) Begin(p image.Point) {
	d.start, d.end, d.active = p, p, true
}

// Update moves the live end point. It is ignored when no drag is active.
func (d *Drag) Update(p image.Point) {
	if d.active {
		d.end = p
	}
}

// End finishes the drag at p and returns the final normalized rectangle.
func (d *Drag) End(p image.Point) image.Rectangle {
	d.Update(p)
	r := d.Rect()
	d.active = false
	return r
}

func (d *Drag) Cancel() { d.active = false }

func (d *Drag) Active() bool { return d.active }

func (d *Drag) Start() image.Point { return d.start }

// Rect returns the rectangle spanned by the drag with non-negative width and
// height regardless of drag direction.
func (d *Drag) Rect() image.Rectangle {
	return Normalize(d.start, d.end)
}

func Normalize(a, b image.Point) image.Rectangle {
	return image.Rect(a.X, a.Y, b.X, b.Y)
}
