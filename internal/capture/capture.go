// Package capture resolves displays and grabs screen pixels into Capture values.
package capture

import (
	"errors"
	"fmt"
	"image"
	"log"
)

var ErrNoDisplays = errors.New("no active displays found")

// Capture is an immutable snapshot of a screen region.
type Capture struct {
	Image   *image.RGBA
	Source  image.Rectangle
	Display int
}

// Adapter is the display side of the host platform.
type Adapter interface {
	NumDisplays() int
	DisplayBounds(index int) image.Rectangle
	Grab(r image.Rectangle) (*image.RGBA, error)
}

// DisplayAt returns the index of the display containing p, or 0 (the primary
// display) when no display contains it.
func DisplayAt(a Adapter, p image.Point) int {
	n := a.NumDisplays()
	for i := 0; i < n; i++ {
		if p.In(a.DisplayBounds(i)) {
			return i
		}
	}
	return 0
}

// VirtualBounds is the union of all display bounds.
func VirtualBounds(a Adapter) image.Rectangle {
	n := a.NumDisplays()
	if n == 0 {
		return image.Rectangle{}
	}
	union := a.DisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(a.DisplayBounds(i))
	}
	return union
}

// Grab captures r (screen coordinates) from the display owning its top-left
// corner. An empty rectangle yields a zero-size image rather than an error.
func Grab(a Adapter, r image.Rectangle) (*Capture, error) {
	if a.NumDisplays() == 0 {
		return nil, ErrNoDisplays
	}
	r = r.Canon()
	display := DisplayAt(a, r.Min)
	clip := r.Intersect(a.DisplayBounds(display))
	if clip.Empty() {
		log.Printf("Empty selection at %v, producing zero-size capture", r.Min)
		return &Capture{
			Image:   image.NewRGBA(image.Rectangle{}),
			Source:  image.Rectangle{Min: r.Min, Max: r.Min},
			Display: display,
		}, nil
	}

	img, err := a.Grab(clip)
	if err != nil {
		return nil, fmt.Errorf("screenshot capture failed: %w", err)
	}
	img.Rect = image.Rectangle{Max: img.Rect.Size()}
	return &Capture{Image: img, Source: clip, Display: display}, nil
}
