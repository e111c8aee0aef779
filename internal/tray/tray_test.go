package tray

import (
	"strings"
	"testing"
)

func TestTooltipNamesHotkeys(t *testing.T) {
	got := tooltip(Options{CaptureHotkey: "Alt+<", PreviewHotkey: "Alt+>"})
	for _, want := range []string{"Alt+<", "Alt+>"} {
		if !strings.Contains(got, want) {
			t.Errorf("tooltip %q is missing %q", got, want)
		}
	}
}
