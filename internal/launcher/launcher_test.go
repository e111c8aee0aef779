package launcher

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"snapmark/internal/action"
	"snapmark/internal/capture"
	"snapmark/internal/window"
)

type fakeOpener struct {
	selectors int
	viewers   []*capture.Capture
	err       error
}

func (f *fakeOpener) OpenSelector() error {
	f.selectors++
	return f.err
}

func (f *fakeOpener) OpenViewer(c *capture.Capture) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.viewers = append(f.viewers, c)
	return fmt.Sprintf("viewer-%d", len(f.viewers)), nil
}

func newCapture(w, h int) *capture.Capture {
	return &capture.Capture{Image: image.NewRGBA(image.Rect(0, 0, w, h)), Source: image.Rect(0, 0, w, h)}
}

func TestPreviewWithoutCaptureIsNoop(t *testing.T) {
	o := &fakeOpener{}
	l := New(o)
	if err := l.Preview(); err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if len(o.viewers) != 0 {
		t.Errorf("expected no viewer, got %d", len(o.viewers))
	}
}

func TestPreviewUsesLatestCapture(t *testing.T) {
	o := &fakeOpener{}
	l := New(o)

	first := newCapture(100, 50)
	second := newCapture(30, 30)
	l.Publish(first)
	if err := l.Preview(); err != nil {
		t.Fatal(err)
	}
	l.Publish(second)
	if err := l.Preview(); err != nil {
		t.Fatal(err)
	}

	if len(o.viewers) != 2 {
		t.Fatalf("expected 2 viewers, got %d", len(o.viewers))
	}
	if o.viewers[0] != first {
		t.Error("first viewer should keep the first capture")
	}
	if o.viewers[1] != second {
		t.Error("second viewer should show the replacement capture")
	}
	if l.Latest() != second {
		t.Error("latest slot should hold the second capture")
	}
	if got := len(l.OpenViewers()); got != 2 {
		t.Errorf("expected 2 open viewers, got %d", got)
	}
}

func TestViewerClosedForgetsViewer(t *testing.T) {
	o := &fakeOpener{}
	l := New(o)
	l.Publish(newCapture(10, 10))
	l.Preview()
	l.Preview()

	l.ViewerClosed("viewer-1")
	l.ViewerClosed("unknown")
	if got := l.OpenViewers(); len(got) != 1 || got[0] != "viewer-2" {
		t.Errorf("OpenViewers() = %v, expected [viewer-2]", got)
	}
}

func TestDo(t *testing.T) {
	o := &fakeOpener{}
	l := New(o)
	if err := l.Do(action.Capture); err != nil {
		t.Fatal(err)
	}
	if o.selectors != 1 {
		t.Errorf("expected 1 selector, got %d", o.selectors)
	}
	if err := l.Do(action.Quit); err == nil {
		t.Error("expected an error for Quit")
	}
}

func TestOpenerErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	l := New(&fakeOpener{err: boom})
	if err := l.Capture(); !errors.Is(err, boom) {
		t.Errorf("Capture error = %v", err)
	}
	l.Publish(newCapture(1, 1))
	if err := l.Preview(); !errors.Is(err, boom) {
		t.Errorf("Preview error = %v", err)
	}
	if len(l.OpenViewers()) != 0 {
		t.Error("failed viewer should not be tracked")
	}
}

type framesHost struct{ frames []*image.RGBA }

func (h *framesHost) Present(f *image.RGBA) { h.frames = append(h.frames, f) }

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func TestPanelClickFiresAction(t *testing.T) {
	var fired []action.Action
	h := &framesHost{}
	p := NewPanel(h, func(a action.Action) { fired = append(fired, a) }, nil)

	preview := center(p.Buttons()[1].Rect())
	p.Handle(window.Event{Kind: window.Press, Button: window.ButtonLeft, Pos: preview})
	if got := h.frames[len(h.frames)-1].RGBAAt(preview.X, preview.Y-10); got != ButtonPressed {
		t.Errorf("pressed button colour = %#v, expected %#v", got, ButtonPressed)
	}
	p.Handle(window.Event{Kind: window.Release, Button: window.ButtonLeft, Pos: preview})

	if len(fired) != 1 || fired[0] != action.Preview {
		t.Errorf("fired = %v, expected [preview]", fired)
	}
}

func TestPanelReleaseOutsideCancels(t *testing.T) {
	var fired []action.Action
	p := NewPanel(&framesHost{}, func(a action.Action) { fired = append(fired, a) }, nil)

	p.Handle(window.Event{Kind: window.Press, Button: window.ButtonLeft, Pos: center(p.Buttons()[0].Rect())})
	p.Handle(window.Event{Kind: window.Release, Button: window.ButtonLeft, Pos: center(p.Buttons()[1].Rect())})
	if len(fired) != 0 {
		t.Errorf("expected no action, got %v", fired)
	}
}

func TestPanelLayout(t *testing.T) {
	p := NewPanel(&framesHost{}, func(action.Action) {}, nil)
	frame := p.Frame()
	if frame.Bounds() != image.Rect(0, 0, PanelWidth, PanelHeight) {
		t.Errorf("frame bounds = %v", frame.Bounds())
	}
	a, b := p.Buttons()[0].Rect(), p.Buttons()[1].Rect()
	if a.Overlaps(b) {
		t.Errorf("buttons overlap: %v %v", a, b)
	}
	if !a.In(frame.Bounds()) || !b.In(frame.Bounds()) {
		t.Errorf("buttons outside panel: %v %v", a, b)
	}

	h := &framesHost{}
	p = NewPanel(h, func(action.Action) {}, nil)
	pt := center(a)
	p.Handle(window.Event{Kind: window.Move, Pos: pt})
	if got := h.frames[0].RGBAAt(pt.X, pt.Y-10); got != ButtonHover {
		t.Errorf("hover colour = %#v, expected %#v", got, ButtonHover)
	}
}

func TestButtonShowsHotkeyOnHover(t *testing.T) {
	hotkeys := map[action.Action]string{
		action.Capture: "Alt+<",
		action.Preview: "Ctrl+Shift+Alt+PrintScreen",
	}
	p := NewPanel(&framesHost{}, func(action.Action) {}, hotkeys)
	capture, preview := p.Buttons()[0], p.Buttons()[1]

	tests := []struct {
		name  string
		b     *Button
		state ButtonState
		want  string
	}{
		{"idle shows label", capture, StateDefault, "Capture"},
		{"hover shows hotkey", capture, StateHover, "Alt+<"},
		{"pressed shows hotkey", capture, StatePressed, "Alt+<"},
		{"hint too wide keeps label", preview, StateHover, "Preview"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Text(tt.state); got != tt.want {
				t.Errorf("Text = %q, expected %q", got, tt.want)
			}
		})
	}

	if got := NewPanel(&framesHost{}, func(action.Action) {}, nil).Buttons()[0].Text(StateHover); got != "Capture" {
		t.Errorf("without hotkeys Text = %q, expected the label", got)
	}
}
