// Package annotate implements the Annotation Viewer: zooming a captured
// bitmap and highlighting boxes on a transparent drawing layer.
package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"snapmark/internal/geom"
)

const (
	ZoomStep = 1.1
	// MinZoomDim is the smallest width or height a zoom may produce.
	MinZoomDim = 50
)

// DefaultHighlight is semi-transparent yellow.
var DefaultHighlight = color.NRGBA{R: 255, G: 255, B: 0, A: 100}

type State int

const (
	Idle State = iota
	Drawing
)

// Session holds the bitmaps of one viewer. The original bitmap is never
// written to; current and layer always have the same bounds.
type Session struct {
	original  *image.RGBA
	current   *image.RGBA
	layer     *image.RGBA
	zoom      float64
	highlight image.Image
	stroke    geom.Drag
}

func NewSession(img *image.RGBA, highlight color.Color) *Session {
	if img == nil {
		img = image.NewRGBA(image.Rectangle{})
	}
	if highlight == nil {
		highlight = DefaultHighlight
	}
	original := rebase(img)
	return &Session{
		original:  original,
		current:   original,
		layer:     image.NewRGBA(original.Bounds()),
		zoom:      1,
		highlight: image.NewUniform(highlight),
	}
}

func (s *Session) State() State {
	if s.stroke.Active() {
		return Drawing
	}
	return Idle
}

func (s *Session) ZoomFactor() float64 { return s.zoom }

// Size is the size of the current (scaled) bitmap.
func (s *Session) Size() image.Point { return s.current.Bounds().Size() }

func (s *Session) Original() *image.RGBA { return s.original }

// Layer exposes the drawing layer for inspection. Callers must not modify it.
func (s *Session) Layer() *image.RGBA { return s.layer }

// Frame composes the current bitmap with the committed strokes.
func (s *Session) Frame() *image.RGBA {
	return Compose(s.current, s.layer)
}

func (s *Session) BeginStroke(p image.Point) {
	s.stroke.Begin(p)
}

// UpdateStroke moves the live stroke corner to p and returns a preview frame
// with the stroke drawn over a copy of the layer. It returns nil when no
// stroke is in progress.
func (s *Session) UpdateStroke(p image.Point) *image.RGBA {
	if !s.stroke.Active() {
		return nil
	}
	s.stroke.Update(p)
	preview := image.NewRGBA(s.layer.Bounds())
	copy(preview.Pix, s.layer.Pix)
	s.fill(preview, s.stroke.Rect())
	return Compose(s.current, preview)
}

// CommitStroke fills the finished stroke into the layer and returns the new
// composite. ok is false when no stroke was in progress.
func (s *Session) CommitStroke(p image.Point) (frame *image.RGBA, ok bool) {
	if !s.stroke.Active() {
		return nil, false
	}
	s.fill(s.layer, s.stroke.End(p))
	return s.Frame(), true
}

func (s *Session) CancelStroke() { s.stroke.Cancel() }

// Zoom applies notches wheel steps (positive zooms in) to the zoom factor and
// rescales the original bitmap. A zoom that would make either dimension
// smaller than MinZoomDim is rejected and leaves the session untouched.
// An accepted zoom starts a fresh, empty drawing layer.
func (s *Session) Zoom(notches int) bool {
	if notches == 0 {
		return false
	}
	factor := s.zoom
	for ; notches > 0; notches-- {
		factor *= ZoomStep
	}
	for ; notches < 0; notches++ {
		factor /= ZoomStep
	}

	size := s.original.Bounds().Size()
	w := int(math.Round(float64(size.X) * factor))
	h := int(math.Round(float64(size.Y) * factor))
	if w < MinZoomDim || h < MinZoomDim {
		return false
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), s.original, s.original.Bounds(), xdraw.Src, nil)

	s.zoom = factor
	s.current = scaled
	s.layer = image.NewRGBA(scaled.Bounds())
	return true
}

func (s *Session) fill(dst *image.RGBA, r image.Rectangle) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, s.highlight, image.Point{}, draw.Over)
}

// Compose returns a new image of base with layer alpha-blended on top. Both
// images are aligned at their top-left corners; neither is modified.
func Compose(base, layer image.Image) *image.RGBA {
	b := base.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), base, b.Min, draw.Src)
	if layer != nil {
		draw.Draw(dst, dst.Bounds(), layer, layer.Bounds().Min, draw.Over)
	}
	return dst
}

func rebase(img *image.RGBA) *image.RGBA {
	if img.Rect.Min == (image.Point{}) {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
	draw.Draw(out, out.Bounds(), img, img.Rect.Min, draw.Src)
	return out
}
