package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestToRGBARebasesToOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 15, 10))
	src.Set(5, 5, color.NRGBA{R: 255, A: 255})

	got := toRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 10, 5) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if r, _, _, a := got.At(0, 0).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Errorf("pixel (0,0) = %v, expected red", got.At(0, 0))
	}
}

func TestLoadImageFromFile(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 7, 3))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := loadImage(path, nil)
	if err != nil {
		t.Fatalf("loadImage: %v", err)
	}
	if img.Bounds().Size() != image.Pt(7, 3) {
		t.Errorf("size = %v", img.Bounds().Size())
	}

	if _, err := loadImage(filepath.Join(t.TempDir(), "missing.png"), nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}
