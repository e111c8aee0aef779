package assets

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"
)

func TestIconPNGDecodes(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(IconPNG))
	if err != nil {
		t.Fatalf("decode icon: %v", err)
	}
	if got := img.Bounds().Dx(); got != 32 {
		t.Errorf("icon width = %d, expected 32", got)
	}
}

func TestIcon(t *testing.T) {
	tests := []struct {
		goos   string
		prefix []byte
	}{
		{"windows", []byte{0, 0, 1, 0}},
		{"linux", []byte("\x89PNG")},
		{"darwin", []byte("\x89PNG")},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := Icon(tt.goos); !bytes.HasPrefix(got, tt.prefix) {
				t.Errorf("Icon(%q) starts with % x", tt.goos, got[:4])
			}
		})
	}
}

// The executable's icon resource is built from IconICO, so the directory
// must describe an image that lies inside the file.
func TestIconICODirectory(t *testing.T) {
	if len(IconICO) < 22 {
		t.Fatalf("icon.ico is %d bytes", len(IconICO))
	}
	le := binary.LittleEndian
	if typ, count := le.Uint16(IconICO[2:]), le.Uint16(IconICO[4:]); typ != 1 || count != 1 {
		t.Fatalf("type=%d count=%d, expected an icon with one image", typ, count)
	}
	entry := IconICO[6:22]
	if entry[0] != 32 || entry[1] != 32 {
		t.Errorf("image is %dx%d, expected 32x32", entry[0], entry[1])
	}
	size, offset := le.Uint32(entry[8:]), le.Uint32(entry[12:])
	if int(offset)+int(size) != len(IconICO) {
		t.Errorf("image at %d+%d does not end the %d byte file", offset, size, len(IconICO))
	}
	if !bytes.HasPrefix(IconICO[offset:], []byte("\x89PNG")) {
		t.Error("image data is not PNG")
	}
}
