//go:build !windows

package hotkey

import (
	"fmt"
	"log"

	gohook "github.com/robotn/gohook"
)

// start runs a global keyboard hook and tracks key state itself: gohook
// reports individual presses, not combinations.
func (l *Listener) start() error {
	m, err := newMatcher(l.bindings)
	if err != nil {
		return err
	}

	evChan := gohook.Start()
	if evChan == nil {
		return fmt.Errorf("failed to start keyboard hook")
	}
	for _, b := range l.bindings {
		log.Printf("Hotkey registered: %s -> %s", b.Combo, b.Action)
	}

	done := make(chan struct{})
	l.done = done
	go func() {
		defer close(done)
		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyHold:
				if a, ok := m.keyDown(ev.Keycode); ok {
					l.dispatch(a)
				}
			case gohook.KeyUp:
				m.keyUp(ev.Keycode)
			}
		}
		log.Println("Keyboard hook event channel closed")
	}()
	return nil
}

func (l *Listener) stop() {
	gohook.End()
}
