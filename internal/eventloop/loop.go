// Package eventloop runs the single goroutine that owns all UI state: the
// launcher, every overlay and viewer controller and every bitmap. Other
// goroutines only talk to it through channels.
package eventloop

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/google/uuid"

	"snapmark/internal/action"
	"snapmark/internal/annotate"
	"snapmark/internal/capture"
	"snapmark/internal/launcher"
	"snapmark/internal/selector"
	"snapmark/internal/window"
)

const (
	actionQueueSize = 8
	eventQueueSize  = 256

	AppTitle = "snapmark"
)

// ImageWriter is the clipboard side of the host platform.
type ImageWriter interface {
	WriteImage(img image.Image) error
}

// Mirror receives a copy of every image written to the clipboard.
type Mirror interface {
	Publish(img image.Image)
}

type Options struct {
	Toolkit   window.Toolkit
	Screen    capture.Adapter
	Clipboard ImageWriter
	// Mirror is optional.
	Mirror       Mirror
	CaptureDelay time.Duration
	Highlight    color.Color
	// ShowLauncher opens the launcher window; closing it ends the loop.
	ShowLauncher bool
	// Hotkeys labels the launcher buttons with their combinations.
	Hotkeys map[action.Action]string
	// ExitWhenIdle ends the loop once no window is open.
	ExitWhenIdle bool
	// Alert reports runtime failures to the user. Defaults to the log.
	Alert func(message string)
}

type controller interface {
	Handle(e window.Event)
	Frame() *image.RGBA
}

type entry struct {
	kind    window.Kind
	surface window.Surface
	ctl     controller
}

type windowEvent struct {
	id string
	ev window.Event
}

type grabRequest struct {
	id   string
	rect image.Rectangle
}

type Loop struct {
	opts     Options
	launcher *launcher.Launcher

	actions chan action.Action
	events  chan windowEvent
	grabs   chan grabRequest
	done    chan struct{}

	windows map[string]*entry
	quit    bool

	pendingGrabs  int
	captureQueued bool
}

func New(opts Options) *Loop {
	if opts.Alert == nil {
		opts.Alert = func(msg string) { log.Printf("Error: %s", msg) }
	}
	if opts.Highlight == nil {
		opts.Highlight = annotate.DefaultHighlight
	}
	l := &Loop{
		opts:    opts,
		actions: make(chan action.Action, actionQueueSize),
		events:  make(chan windowEvent, eventQueueSize),
		grabs:   make(chan grabRequest, 1),
		done:    make(chan struct{}),
		windows: make(map[string]*entry),
	}
	l.launcher = launcher.New(l)
	return l
}

// Post queues an action from any goroutine without blocking. It reports
// false when the queue is full and the action was dropped.
func (l *Loop) Post(a action.Action) bool {
	select {
	case l.actions <- a:
		return true
	default:
		log.Printf("Warning: action queue full, dropping %s", a)
		return false
	}
}

// Run processes actions, window events and timers until Quit is posted, the
// launcher window closes or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.closeAll()

	if l.opts.ShowLauncher {
		if err := l.openLauncher(); err != nil {
			return fmt.Errorf("open launcher: %w", err)
		}
	}

	for !l.quit {
		select {
		case <-ctx.Done():
			log.Println("UI loop cancelled")
			return nil
		case a := <-l.actions:
			l.dispatch(a)
		case we := <-l.events:
			l.handleEvent(we)
		case g := <-l.grabs:
			l.finishCapture(g)
		}
	}
	log.Println("UI loop exiting")
	return nil
}

// ShowCapture opens a viewer directly. It must be called from the goroutine
// that calls Run, before Run.
func (l *Loop) ShowCapture(c *capture.Capture) error {
	l.launcher.Publish(c)
	return l.launcher.Preview()
}

func (l *Loop) dispatch(a action.Action) {
	log.Printf("Action: %s", a)
	if a == action.Quit {
		l.quit = true
		return
	}
	if err := l.launcher.Do(a); err != nil {
		l.opts.Alert(err.Error())
	}
}

func (l *Loop) handleEvent(we windowEvent) {
	e, ok := l.windows[we.id]
	if !ok {
		return
	}
	e.ctl.Handle(we.ev)
	if we.ev.Kind != window.Closed {
		return
	}

	delete(l.windows, we.id)
	log.Printf("Closed %s window %s", e.kind, we.id)
	switch e.kind {
	case window.KindLauncher:
		l.quit = true
	case window.KindViewer:
		l.launcher.ViewerClosed(we.id)
	}
	if l.opts.ExitWhenIdle && len(l.windows) == 0 {
		l.quit = true
	}
}

func (l *Loop) sink(id string) func(window.Event) {
	return func(e window.Event) {
		select {
		case l.events <- windowEvent{id: id, ev: e}:
		case <-l.done:
		}
	}
}

func (l *Loop) open(kind window.Kind, bounds image.Rectangle, build func(id string, s window.Surface) controller) (string, error) {
	id := uuid.NewString()
	// Overlay and viewer titles must be unique so the native layer can find
	// the window by title.
	title := AppTitle
	if kind != window.KindLauncher {
		title = fmt.Sprintf("%s %s %s", AppTitle, kind, id)
	}
	s, err := l.opts.Toolkit.Open(window.Spec{
		ID:     id,
		Kind:   kind,
		Title:  title,
		Bounds: bounds,
	}, l.sink(id))
	if err != nil {
		return "", err
	}
	log.Printf("Opened %s window %s at %v", kind, id, bounds)
	e := &entry{kind: kind, surface: s, ctl: build(id, s)}
	l.windows[id] = e
	s.Present(e.ctl.Frame())
	return id, nil
}

func (l *Loop) openLauncher() error {
	size := image.Pt(launcher.PanelWidth, launcher.PanelHeight)
	var origin image.Point
	if l.opts.Screen.NumDisplays() > 0 {
		d := l.opts.Screen.DisplayBounds(0)
		origin = d.Min.Add(d.Size().Sub(size).Div(2))
	}
	_, err := l.open(window.KindLauncher, image.Rectangle{Min: origin, Max: origin.Add(size)},
		func(id string, s window.Surface) controller {
			return launcher.NewPanel(s, l.dispatch, l.opts.Hotkeys)
		})
	return err
}

// OpenSelector opens the selection overlay over the whole virtual screen.
// Only one overlay is open at a time. A request made while an overlay waits
// for its delayed grab is held and served once that grab is done, so the new
// overlay is not in the grabbed pixels.
func (l *Loop) OpenSelector() error {
	if l.pendingGrabs > 0 {
		log.Println("Capture queued behind pending grab")
		l.captureQueued = true
		return nil
	}
	for _, e := range l.windows {
		if o, ok := e.ctl.(*selector.Overlay); ok && !o.Done() {
			log.Println("Selection already in progress")
			return nil
		}
	}

	bounds := capture.VirtualBounds(l.opts.Screen)
	if bounds.Empty() {
		return capture.ErrNoDisplays
	}
	backdrop, err := l.opts.Screen.Grab(bounds)
	if err != nil {
		log.Printf("Warning: failed to freeze screen for overlay: %v", err)
		backdrop = nil
	}

	_, err = l.open(window.KindOverlay, bounds, func(id string, s window.Surface) controller {
		return selector.New(bounds, backdrop, &overlayHost{loop: l, id: id, surface: s})
	})
	return err
}

// OpenViewer opens a viewer on c at the capture's source position.
func (l *Loop) OpenViewer(c *capture.Capture) (string, error) {
	size := c.Image.Bounds().Size()
	size.X, size.Y = max(size.X, 1), max(size.Y, 1)
	bounds := image.Rectangle{Min: c.Source.Min, Max: c.Source.Min.Add(size)}

	return l.open(window.KindViewer, bounds, func(id string, s window.Surface) controller {
		return annotate.NewViewer(c.Image, l.opts.Highlight, &viewerHost{loop: l, surface: s})
	})
}

func (l *Loop) scheduleGrab(id string, r image.Rectangle) {
	l.pendingGrabs++
	time.AfterFunc(l.opts.CaptureDelay, func() {
		select {
		case l.grabs <- grabRequest{id: id, rect: r}:
		case <-l.done:
		}
	})
}

func (l *Loop) finishCapture(g grabRequest) {
	l.pendingGrabs--
	if e, ok := l.windows[g.id]; ok {
		e.surface.Close()
	}
	defer l.openQueuedSelector()

	c, err := capture.Grab(l.opts.Screen, g.rect)
	if err != nil {
		l.opts.Alert(fmt.Sprintf("capture failed: %v", err))
		return
	}
	log.Printf("Captured %v on display %d", c.Source, c.Display)
	l.copyImage(c.Image)
	l.launcher.Publish(c)
}

func (l *Loop) openQueuedSelector() {
	if !l.captureQueued {
		return
	}
	l.captureQueued = false
	if err := l.OpenSelector(); err != nil {
		l.opts.Alert(fmt.Sprintf("capture failed: %v", err))
	}
}

// copyImage writes img to the clipboard and the mirror. Empty images are
// skipped.
func (l *Loop) copyImage(img *image.RGBA) {
	if img.Bounds().Empty() {
		log.Println("Empty selection, clipboard left unchanged")
		return
	}
	if err := l.opts.Clipboard.WriteImage(img); err != nil {
		l.opts.Alert(fmt.Sprintf("failed to copy image: %v", err))
	}
	if l.opts.Mirror != nil {
		l.opts.Mirror.Publish(img)
	}
}

func (l *Loop) closeAll() {
	for id, e := range l.windows {
		e.surface.Close()
		delete(l.windows, id)
	}
}

type overlayHost struct {
	loop    *Loop
	id      string
	surface window.Surface
}

func (h *overlayHost) Present(frame *image.RGBA) { h.surface.Present(frame) }
func (h *overlayHost) Hide()                     { h.surface.Hide() }
func (h *overlayHost) Close()                    { h.surface.Close() }

func (h *overlayHost) Capture(r image.Rectangle) {
	h.loop.scheduleGrab(h.id, r)
}

type viewerHost struct {
	loop    *Loop
	surface window.Surface
}

func (h *viewerHost) Present(frame *image.RGBA) { h.surface.Present(frame) }
func (h *viewerHost) Place(r image.Rectangle)   { h.surface.SetBounds(r) }
func (h *viewerHost) Bounds() image.Rectangle   { return h.surface.Bounds() }
func (h *viewerHost) Close()                    { h.surface.Close() }
func (h *viewerHost) Copy(frame *image.RGBA)    { h.loop.copyImage(frame) }
