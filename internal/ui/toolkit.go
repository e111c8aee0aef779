// Package ui backs window.Toolkit with golang.org/x/exp/shiny windows. Each
// window gets a pump goroutine that translates shiny events and forwards
// them; frames are uploaded through shiny buffers.
package ui

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"

	"snapmark/internal/native"
	"snapmark/internal/window"
)

type Toolkit struct {
	s screen.Screen
}

func New(s screen.Screen) *Toolkit {
	return &Toolkit{s: s}
}

func (t *Toolkit) Open(spec window.Spec, sink func(window.Event)) (window.Surface, error) {
	size := spec.Bounds.Size()
	w, err := t.s.NewWindow(&screen.NewWindowOptions{
		Width:  max(size.X, 1),
		Height: max(size.Y, 1),
		Title:  spec.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s window: %w", spec.Kind, err)
	}

	sf := &surface{s: t.s, w: w, kind: spec.Kind, bounds: spec.Bounds, sink: sink}
	if nw, err := native.Find(spec.Title); err != nil {
		log.Printf("Warning: %v; using default window chrome", err)
	} else {
		sf.native = nw
		sf.applyChrome()
	}

	go sf.pump()
	return sf, nil
}

type surface struct {
	s      screen.Screen
	w      screen.Window
	native native.Window
	kind   window.Kind
	sink   func(window.Event)

	mu       sync.Mutex
	bounds   image.Rectangle
	released bool

	closeOnce sync.Once
}

func (sf *surface) applyChrome() {
	if sf.kind != window.KindLauncher {
		if err := sf.native.Float(); err != nil {
			log.Printf("Warning: failed to float %s window: %v", sf.kind, err)
		}
	}
	if err := sf.native.SetBounds(sf.bounds); err != nil {
		log.Printf("Warning: failed to place %s window: %v", sf.kind, err)
	}
	if sf.kind == window.KindOverlay {
		sf.native.Focus()
	}
}

func (sf *surface) Present(frame *image.RGBA) {
	size := frame.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return
	}

	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.released {
		return
	}

	b, err := sf.s.NewBuffer(size)
	if err != nil {
		log.Printf("Failed to allocate %v buffer: %v", size, err)
		return
	}
	defer b.Release()
	draw.Draw(b.RGBA(), b.Bounds(), frame, frame.Bounds().Min, draw.Src)
	sf.w.Upload(image.Point{}, b, b.Bounds())
	sf.w.Publish()
}

func (sf *surface) SetBounds(r image.Rectangle) {
	sf.mu.Lock()
	sf.bounds = r
	released := sf.released
	sf.mu.Unlock()
	if released || sf.native == nil {
		return
	}
	if err := sf.native.SetBounds(r); err != nil {
		log.Printf("Warning: failed to place %s window: %v", sf.kind, err)
	}
}

func (sf *surface) Bounds() image.Rectangle {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.bounds
}

// Hide unmaps the window. Without native support the window is released
// instead, which is all an overlay needs before the grab.
func (sf *surface) Hide() {
	if sf.native != nil && sf.native.Hide() {
		return
	}
	sf.Close()
}

func (sf *surface) Close() {
	sf.mu.Lock()
	if sf.released {
		sf.mu.Unlock()
		return
	}
	sf.released = true
	sf.mu.Unlock()

	sf.w.Release()
	// Not every driver reports StageDead after Release.
	go sf.closed()
}

func (sf *surface) closed() {
	sf.closeOnce.Do(func() {
		sf.sink(window.Event{Kind: window.Closed, Time: time.Now()})
	})
}

func (sf *surface) isReleased() bool {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.released
}

func (sf *surface) pump() {
	for {
		e := sf.w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				sf.Close()
				sf.closed()
				return
			}
		case paint.Event:
			sf.sink(window.Event{Kind: window.Repaint, Time: time.Now()})
		case mouse.Event:
			if ev, ok := sf.translateMouse(e); ok {
				sf.sink(ev)
			}
		case key.Event:
			if e.Code == key.CodeEscape && e.Direction == key.DirPress {
				sf.sink(window.Event{Kind: window.KeyPress, Key: window.KeyEscape, Time: time.Now()})
			}
		}
		if sf.isReleased() {
			return
		}
	}
}

func (sf *surface) translateMouse(e mouse.Event) (window.Event, bool) {
	pos := image.Pt(int(e.X), int(e.Y))
	ev := window.Event{Pos: pos, Screen: sf.screenPoint(pos), Time: time.Now()}

	switch e.Button {
	case mouse.ButtonWheelUp, mouse.ButtonWheelDown:
		// Some drivers report a wheel notch as a press/release pair.
		if e.Direction == mouse.DirRelease {
			return ev, false
		}
		ev.Kind = window.Wheel
		ev.Wheel = 1
		if e.Button == mouse.ButtonWheelDown {
			ev.Wheel = -1
		}
		return ev, true
	case mouse.ButtonWheelLeft, mouse.ButtonWheelRight:
		return ev, false
	case mouse.ButtonLeft:
		ev.Button = window.ButtonLeft
	case mouse.ButtonMiddle:
		ev.Button = window.ButtonMiddle
	case mouse.ButtonRight:
		ev.Button = window.ButtonRight
	}

	switch e.Direction {
	case mouse.DirPress:
		ev.Kind = window.Press
	case mouse.DirRelease:
		ev.Kind = window.Release
	case mouse.DirNone:
		ev.Kind = window.Move
	default:
		return ev, false
	}
	return ev, true
}

func (sf *surface) screenPoint(local image.Point) image.Point {
	if p, ok := native.CursorPos(); ok {
		return p
	}
	return sf.Bounds().Min.Add(local)
}
