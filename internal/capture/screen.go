package capture

import (
	"image"

	"github.com/kbinani/screenshot"
)

// ScreenAdapter reads displays through kbinani/screenshot.
type ScreenAdapter struct{}

func (ScreenAdapter) NumDisplays() int { return screenshot.NumActiveDisplays() }

func (ScreenAdapter) DisplayBounds(index int) image.Rectangle {
	return screenshot.GetDisplayBounds(index)
}

func (ScreenAdapter) Grab(r image.Rectangle) (*image.RGBA, error) {
	return screenshot.CaptureRect(r)
}
