package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

type fakeAdapter struct {
	displays []image.Rectangle
	grabbed  []image.Rectangle
	err      error
}

func (f *fakeAdapter) NumDisplays() int { return len(f.displays) }

func (f *fakeAdapter) DisplayBounds(i int) image.Rectangle { return f.displays[i] }

func (f *fakeAdapter) Grab(r image.Rectangle) (*image.RGBA, error) {
	f.grabbed = append(f.grabbed, r)
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(r)
	img.SetRGBA(r.Min.X, r.Min.Y, color.RGBA{R: 1, A: 255})
	return img, nil
}

func TestGrabRequestsSelectedRect(t *testing.T) {
	a := &fakeAdapter{displays: []image.Rectangle{image.Rect(0, 0, 1920, 1080)}}

	c, err := Grab(a, image.Rect(10, 10, 110, 60))
	if err != nil {
		t.Fatalf("Grab failed: %v", err)
	}
	if len(a.grabbed) != 1 {
		t.Fatalf("expected 1 grab, got %d", len(a.grabbed))
	}
	if got := a.grabbed[0]; got.Min != image.Pt(10, 10) || got.Dx() != 100 || got.Dy() != 50 {
		t.Errorf("grab rect = %v, expected x=10 y=10 w=100 h=50", got)
	}
	if c.Image.Bounds() != image.Rect(0, 0, 100, 50) {
		t.Errorf("expected image rebased to origin, got %v", c.Image.Bounds())
	}
	if got := c.Image.RGBAAt(0, 0); got.R != 1 {
		t.Errorf("expected first pixel to survive rebasing, got %#v", got)
	}
	if c.Source != image.Rect(10, 10, 110, 60) {
		t.Errorf("Source = %v", c.Source)
	}
}

func TestGrabEmptyRectIsZeroSize(t *testing.T) {
	a := &fakeAdapter{displays: []image.Rectangle{image.Rect(0, 0, 800, 600)}}

	c, err := Grab(a, image.Rect(40, 40, 40, 40))
	if err != nil {
		t.Fatalf("Grab of empty rect failed: %v", err)
	}
	if c.Image == nil {
		t.Fatal("expected non-nil image")
	}
	if sz := c.Image.Bounds().Size(); sz != (image.Point{}) {
		t.Errorf("expected zero-size image, got %v", sz)
	}
	if len(a.grabbed) != 0 {
		t.Errorf("expected no screen grab for empty rect, got %v", a.grabbed)
	}
}

func TestDisplayAtFallsBackToPrimary(t *testing.T) {
	a := &fakeAdapter{displays: []image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(1920, 0, 3840, 1080),
	}}

	tests := []struct {
		p    image.Point
		want int
	}{
		{image.Pt(10, 10), 0},
		{image.Pt(2000, 500), 1},
		{image.Pt(-50, -50), 0},
		{image.Pt(5000, 10), 0},
	}
	for _, tt := range tests {
		if got := DisplayAt(a, tt.p); got != tt.want {
			t.Errorf("DisplayAt(%v) = %d, expected %d", tt.p, got, tt.want)
		}
	}
}

func TestGrabClipsToOwningDisplay(t *testing.T) {
	a := &fakeAdapter{displays: []image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(1920, 0, 3840, 1080),
	}}

	c, err := Grab(a, image.Rect(2000, 100, 1800, 300))
	if err != nil {
		t.Fatalf("Grab failed: %v", err)
	}
	if c.Display != 0 {
		t.Errorf("expected display 0 to own top-left (1800,100), got %d", c.Display)
	}
	if want := image.Rect(1800, 100, 1920, 300); a.grabbed[0] != want {
		t.Errorf("grab rect = %v, expected %v", a.grabbed[0], want)
	}
}

func TestGrabErrors(t *testing.T) {
	if _, err := Grab(&fakeAdapter{}, image.Rect(0, 0, 5, 5)); !errors.Is(err, ErrNoDisplays) {
		t.Errorf("expected ErrNoDisplays, got %v", err)
	}

	boom := errors.New("boom")
	a := &fakeAdapter{displays: []image.Rectangle{image.Rect(0, 0, 100, 100)}, err: boom}
	if _, err := Grab(a, image.Rect(0, 0, 5, 5)); !errors.Is(err, boom) {
		t.Errorf("expected wrapped grab error, got %v", err)
	}
}

func TestVirtualBounds(t *testing.T) {
	a := &fakeAdapter{displays: []image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(-1280, 200, 0, 1224),
	}}
	if got, want := VirtualBounds(a), image.Rect(-1280, 0, 1920, 1224); got != want {
		t.Errorf("VirtualBounds = %v, expected %v", got, want)
	}
	if got := VirtualBounds(&fakeAdapter{}); !got.Empty() {
		t.Errorf("expected empty bounds with no displays, got %v", got)
	}
}

func TestScreenAdapter(t *testing.T) {
	var a ScreenAdapter
	if a.NumDisplays() == 0 {
		t.Skip("no active displays (headless environment)")
	}
	c, err := Grab(a, image.Rect(0, 0, 10, 10))
	if err != nil {
		t.Logf("Failed to capture region (expected in some headless environments): %v", err)
		return
	}
	if c.Image.Bounds().Dx() != 10 {
		t.Errorf("expected 10px wide capture, got %v", c.Image.Bounds())
	}
}
