// Package hotkey listens for system-wide key combinations and reports them as
// actions. Firings are delivered on the listener's own goroutine; callers
// forward them to the UI loop without blocking.
package hotkey

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"snapmark/internal/action"
)

var ErrUnsupportedKey = errors.New("unsupported hotkey key")

type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModCtrl
	ModShift
	ModWin
)

func (m Modifier) String() string {
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if m&ModWin != 0 {
		parts = append(parts, "Win")
	}
	return strings.Join(parts, "+")
}

// Combo is a parsed key combination. Key is either a single printable
// character ("<", "S") or a named key ("F5", "PrintScreen").
type Combo struct {
	Mods Modifier
	Key  string
}

func (c Combo) String() string {
	if c.Mods == 0 {
		return c.Key
	}
	return c.Mods.String() + "+" + c.Key
}

var namedKeys = map[string]string{
	"printscreen": "PrintScreen",
	"prtsc":       "PrintScreen",
	"space":       "Space",
	"tab":         "Tab",
	"enter":       "Enter",
	"return":      "Enter",
	"escape":      "Escape",
	"esc":         "Escape",
	"insert":      "Insert",
	"delete":      "Delete",
	"home":        "Home",
	"end":         "End",
	"pageup":      "PageUp",
	"pagedown":    "PageDown",
	"up":          "Up",
	"down":        "Down",
	"left":        "Left",
	"right":       "Right",
}

func init() {
	for i := 1; i <= 24; i++ {
		name := fmt.Sprintf("F%d", i)
		namedKeys[strings.ToLower(name)] = name
	}
}

// Parse reads combinations such as "Alt+<", "Ctrl+Shift+S" or "PrintScreen".
func Parse(s string) (Combo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Combo{}, fmt.Errorf("empty hotkey")
	}

	var parts []string
	switch {
	case s == "+":
		parts = []string{"+"}
	case strings.HasSuffix(s, "++"):
		parts = append(strings.Split(strings.TrimSuffix(s, "++"), "+"), "+")
	default:
		parts = strings.Split(s, "+")
	}

	var c Combo
	for i, part := range parts {
		part = strings.TrimSpace(part)
		last := i == len(parts)-1
		switch strings.ToLower(part) {
		case "alt":
			c.Mods |= ModAlt
			continue
		case "ctrl", "control":
			c.Mods |= ModCtrl
			continue
		case "shift":
			c.Mods |= ModShift
			continue
		case "win", "super", "meta", "cmd":
			c.Mods |= ModWin
			continue
		}
		if !last {
			return Combo{}, fmt.Errorf("hotkey %q: %w: %q", s, ErrUnsupportedKey, part)
		}
		key, err := normalizeKey(part)
		if err != nil {
			return Combo{}, fmt.Errorf("hotkey %q: %w", s, err)
		}
		c.Key = key
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("hotkey %q: missing key", s)
	}
	return c, nil
}

func normalizeKey(k string) (string, error) {
	if len([]rune(k)) == 1 {
		return strings.ToUpper(k), nil
	}
	if name, ok := namedKeys[strings.ToLower(k)]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKey, k)
}

// Binding ties a combination to the action it fires.
type Binding struct {
	Combo  Combo
	Action action.Action
}

// Listener owns the platform hook for a set of bindings.
type Listener struct {
	bindings []Binding
	fire     func(action.Action)

	mu       sync.Mutex
	running  bool
	threadID uint32
	done     chan struct{}
}

// Start registers bindings and begins delivering firings to fire. A
// registration failure is returned and nothing stays registered.
func Start(bindings []Binding, fire func(action.Action)) (*Listener, error) {
	if len(bindings) == 0 {
		return nil, fmt.Errorf("no hotkeys to register")
	}
	l := &Listener{bindings: bindings, fire: fire}
	if err := l.start(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.running = true
	l.mu.Unlock()
	return l, nil
}

// Stop unregisters the bindings and waits briefly for the hook to exit.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	done := l.done
	l.mu.Unlock()

	l.stop()

	select {
	case <-done:
		log.Println("Hotkey listener exited cleanly")
	case <-time.After(3 * time.Second):
		log.Println("Warning: hotkey listener did not exit within timeout")
	}
}

func (l *Listener) dispatch(a action.Action) {
	log.Printf("Hotkey fired: %s", a)
	l.fire(a)
}
