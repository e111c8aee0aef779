package geom

import (
	"image"
	"testing"
)

func TestNormalizeAnyDirection(t *testing.T) {
	want := image.Rect(10, 10, 110, 60)
	tests := []struct {
		name string
		a, b image.Point
	}{
		{"down-right", image.Pt(10, 10), image.Pt(110, 60)},
		{"up-left", image.Pt(110, 60), image.Pt(10, 10)},
		{"down-left", image.Pt(110, 10), image.Pt(10, 60)},
		{"up-right", image.Pt(10, 60), image.Pt(110, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.a, tt.b)
			if got != want {
				t.Errorf("Normalize(%v, %v) = %v, expected %v", tt.a, tt.b, got, want)
			}
			if got.Dx() < 0 || got.Dy() < 0 {
				t.Errorf("Normalize produced negative size %v", got.Size())
			}
		})
	}
}

func TestDragLifecycle(t *testing.T) {
	var d Drag
	d.Update(image.Pt(5, 5))
	if d.Active() {
		t.Fatal("expected inactive drag before Begin")
	}

	d.Begin(image.Pt(110, 60))
	if !d.Active() {
		t.Fatal("expected active drag after Begin")
	}
	if r := d.Rect(); !r.Empty() {
		t.Errorf("expected empty rect right after Begin, got %v", r)
	}

	d.Update(image.Pt(50, 20))
	if got, want := d.Rect(), image.Rect(50, 20, 110, 60); got != want {
		t.Errorf("Rect() = %v, expected %v", got, want)
	}

	r := d.End(image.Pt(10, 10))
	if want := image.Rect(10, 10, 110, 60); r != want {
		t.Errorf("End() = %v, expected %v", r, want)
	}
	if d.Active() {
		t.Error("expected inactive drag after End")
	}
}

func TestDragCancel(t *testing.T) {
	var d Drag
	d.Begin(image.Pt(1, 1))
	d.Cancel()
	if d.Active() {
		t.Error("expected inactive drag after Cancel")
	}
}
