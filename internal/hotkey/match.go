package hotkey

import (
	"fmt"

	"snapmark/internal/action"
)

// keyCode is a libuiohook virtual key code plus whether the character needs
// Shift on a US layout.
type keyCode struct {
	code  uint16
	shift bool
}

const (
	vcShiftL   = 0x002A
	vcShiftR   = 0x0036
	vcControlL = 0x001D
	vcControlR = 0x0E1D
	vcAltL     = 0x0038
	vcAltR     = 0x0E38
	vcMetaL    = 0x0E5B
	vcMetaR    = 0x0E5C
)

var modifierCodes = map[uint16]Modifier{
	vcShiftL:   ModShift,
	vcShiftR:   ModShift,
	vcControlL: ModCtrl,
	vcControlR: ModCtrl,
	vcAltL:     ModAlt,
	vcAltR:     ModAlt,
	vcMetaL:    ModWin,
	vcMetaR:    ModWin,
}

var keyCodes = map[string]keyCode{}

func init() {
	plain := map[string]uint16{
		"`": 0x29, "-": 0x0C, "=": 0x0D, "[": 0x1A, "]": 0x1B, "\\": 0x2B,
		";": 0x27, "'": 0x28, ",": 0x33, ".": 0x34, "/": 0x35,
		"1": 0x02, "2": 0x03, "3": 0x04, "4": 0x05, "5": 0x06,
		"6": 0x07, "7": 0x08, "8": 0x09, "9": 0x0A, "0": 0x0B,
		"Q": 0x10, "W": 0x11, "E": 0x12, "R": 0x13, "T": 0x14,
		"Y": 0x15, "U": 0x16, "I": 0x17, "O": 0x18, "P": 0x19,
		"A": 0x1E, "S": 0x1F, "D": 0x20, "F": 0x21, "G": 0x22,
		"H": 0x23, "J": 0x24, "K": 0x25, "L": 0x26,
		"Z": 0x2C, "X": 0x2D, "C": 0x2E, "V": 0x2F, "B": 0x30,
		"N": 0x31, "M": 0x32,
		"Escape": 0x01, "Tab": 0x0F, "Enter": 0x1C, "Space": 0x39,
		"PrintScreen": 0x0E37, "Insert": 0x0E52, "Delete": 0x0E53,
		"Home": 0x0E47, "End": 0x0E4F, "PageUp": 0x0E49, "PageDown": 0x0E51,
		"Up": 0xE048, "Left": 0xE04B, "Right": 0xE04D, "Down": 0xE050,
		"F11": 0x57, "F12": 0x58,
	}
	for k, c := range plain {
		keyCodes[k] = keyCode{code: c}
	}
	for i := 1; i <= 10; i++ {
		keyCodes[fmt.Sprintf("F%d", i)] = keyCode{code: uint16(0x3A + i)}
	}

	shifted := map[string]string{
		"~": "`", "!": "1", "@": "2", "#": "3", "$": "4", "%": "5",
		"^": "6", "&": "7", "*": "8", "(": "9", ")": "0", "_": "-",
		"+": "=", "{": "[", "}": "]", "|": "\\", ":": ";", "\"": "'",
		"<": ",", ">": ".", "?": "/",
	}
	for k, base := range shifted {
		keyCodes[k] = keyCode{code: keyCodes[base].code, shift: true}
	}
}

type chord struct {
	mods   Modifier
	code   uint16
	action action.Action
}

// matcher turns a raw key press/release stream into binding firings. A
// binding fires once per press of its key while exactly its modifiers are
// held; auto-repeat does not fire it again.
type matcher struct {
	chords []chord
	held   map[uint16]bool
}

func newMatcher(bindings []Binding) (*matcher, error) {
	m := &matcher{held: make(map[uint16]bool)}
	for _, b := range bindings {
		k, ok := keyCodes[b.Combo.Key]
		if !ok {
			return nil, fmt.Errorf("hotkey %s: %w", b.Combo, ErrUnsupportedKey)
		}
		mods := b.Combo.Mods
		if k.shift {
			mods |= ModShift
		}
		m.chords = append(m.chords, chord{mods: mods, code: k.code, action: b.Action})
	}
	return m, nil
}

func (m *matcher) mods() Modifier {
	var mods Modifier
	for code, down := range m.held {
		if down {
			mods |= modifierCodes[code]
		}
	}
	return mods
}

func (m *matcher) keyDown(code uint16) (action.Action, bool) {
	repeat := m.held[code]
	m.held[code] = true
	if _, isMod := modifierCodes[code]; isMod || repeat {
		return 0, false
	}
	mods := m.mods()
	for _, c := range m.chords {
		if c.code == code && c.mods == mods {
			return c.action, true
		}
	}
	return 0, false
}

func (m *matcher) keyUp(code uint16) {
	delete(m.held, code)
}
