// Package clipboard publishes images to the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"sync"

	"golang.design/x/clipboard"
)

// ErrEmptyImage is returned for zero-size images, which have no clipboard
// representation.
var ErrEmptyImage = errors.New("image has no pixels")

// System writes to the OS clipboard. Create it with Init.
type System struct {
	mu sync.Mutex
}

func Init() (*System, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard unavailable: %w", err)
	}
	return &System{}, nil
}

// WriteImage replaces the clipboard contents with img encoded as PNG.
func (s *System) WriteImage(img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clipboard.Write(clipboard.FmtImage, data)
	log.Printf("Copied %dx%d image to clipboard", img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// ReadImage decodes the image currently on the clipboard.
func (s *System) ReadImage() (image.Image, error) {
	s.mu.Lock()
	data := clipboard.Read(clipboard.FmtImage)
	s.mu.Unlock()
	if len(data) == 0 {
		return nil, errors.New("clipboard holds no image")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode clipboard image: %w", err)
	}
	return img, nil
}

func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
