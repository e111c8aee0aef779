package logutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRotatingWriterRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	w, err := newRotatingWriter(path, 16, 2)
	if err != nil {
		t.Fatalf("newRotatingWriter failed: %v", err)
	}
	defer w.Close()

	for i := 0; i < 4; i++ {
		if _, err := w.Write(bytes.Repeat([]byte{'a' + byte(i)}, 10)); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	cur, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(cur) != "dddddddddd" {
		t.Errorf("Expected current log to hold the last write, got %q", cur)
	}
	first, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != "cccccccccc" {
		t.Errorf("Expected .1 archive to hold the previous write, got %q", first)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Errorf("Expected no third archive, stat err=%v", err)
	}
}

func TestSetupWithoutDir(t *testing.T) {
	c, err := Setup("")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
