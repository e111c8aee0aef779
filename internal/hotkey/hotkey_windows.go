//go:build windows

package hotkey

import (
	"fmt"
	"log"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	MOD_ALT      = 0x0001
	MOD_CONTROL  = 0x0002
	MOD_SHIFT    = 0x0004
	MOD_WIN      = 0x0008
	MOD_NOREPEAT = 0x4000

	WM_HOTKEY = 0x0312
	WM_QUIT   = 0x0012
)

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey    = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey  = user32.NewProc("UnregisterHotKey")
	procGetMessage        = user32.NewProc("GetMessageW")
	procPostThreadMessage = user32.NewProc("PostThreadMessageW")
	procVkKeyScan         = user32.NewProc("VkKeyScanW")
)

var namedVK = map[string]uint32{
	"PrintScreen": 0x2C,
	"Space":       0x20,
	"Tab":         0x09,
	"Enter":       0x0D,
	"Escape":      0x1B,
	"Insert":      0x2D,
	"Delete":      0x2E,
	"Home":        0x24,
	"End":         0x23,
	"PageUp":      0x21,
	"PageDown":    0x22,
	"Left":        0x25,
	"Up":          0x26,
	"Right":       0x27,
	"Down":        0x28,
}

type msg struct {
	hwnd     uintptr
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       struct{ x, y int32 }
	lPrivate uint32
}

// resolve maps a combo to RegisterHotKey modifiers and a virtual key. Single
// characters go through VkKeyScanW so that shifted characters such as "<"
// pick up the Shift modifier of the active keyboard layout.
func resolve(c Combo) (mods, vk uint32, err error) {
	if c.Mods&ModAlt != 0 {
		mods |= MOD_ALT
	}
	if c.Mods&ModCtrl != 0 {
		mods |= MOD_CONTROL
	}
	if c.Mods&ModShift != 0 {
		mods |= MOD_SHIFT
	}
	if c.Mods&ModWin != 0 {
		mods |= MOD_WIN
	}

	if v, ok := namedVK[c.Key]; ok {
		return mods, v, nil
	}
	var n int
	if _, scanErr := fmt.Sscanf(c.Key, "F%d", &n); scanErr == nil && n >= 1 && n <= 24 {
		return mods, uint32(0x70 + n - 1), nil
	}

	r := []rune(c.Key)
	if len(r) != 1 || r[0] > 0xFFFF {
		return 0, 0, fmt.Errorf("hotkey %s: %w", c, ErrUnsupportedKey)
	}
	ret, _, _ := procVkKeyScan.Call(uintptr(r[0]))
	scan := int16(ret)
	if scan == -1 {
		return 0, 0, fmt.Errorf("hotkey %s: %w: not on this keyboard layout", c, ErrUnsupportedKey)
	}
	shiftState := (scan >> 8) & 0xFF
	if shiftState&1 != 0 {
		mods |= MOD_SHIFT
	}
	if shiftState&2 != 0 {
		mods |= MOD_CONTROL
	}
	if shiftState&4 != 0 {
		mods |= MOD_ALT
	}
	return mods, uint32(scan & 0xFF), nil
}

// start registers every binding on a dedicated, locked OS thread and runs
// that thread's message loop. WM_HOTKEY is delivered to the registering
// thread, so registration and the loop must share it.
func (l *Listener) start() error {
	ready := make(chan error, 1)
	done := make(chan struct{})

	go func() {
		runtime.LockOSThread()
		defer close(done)

		var registered []int
		for i, b := range l.bindings {
			mods, vk, err := resolve(b.Combo)
			if err != nil {
				unregisterAll(registered)
				ready <- err
				return
			}
			id := i + 1
			ret, _, callErr := procRegisterHotKey.Call(0, uintptr(id), uintptr(mods|MOD_NOREPEAT), uintptr(vk))
			if ret == 0 {
				unregisterAll(registered)
				ready <- fmt.Errorf("failed to register hotkey %s: %w", b.Combo, callErr)
				return
			}
			registered = append(registered, id)
			log.Printf("Hotkey registered: %s -> %s", b.Combo, b.Action)
		}

		l.mu.Lock()
		l.threadID = windows.GetCurrentThreadId()
		l.mu.Unlock()
		ready <- nil

		l.messageLoop()
		unregisterAll(registered)
		log.Println("Hotkey message loop has exited")
	}()

	if err := <-ready; err != nil {
		return err
	}
	l.done = done
	return nil
}

func (l *Listener) messageLoop() {
	m := &msg{}
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(m)), 0, 0, 0)
		if ret == 0 || ret == uintptr(syscall.InvalidHandle) {
			return
		}
		if m.message != WM_HOTKEY {
			continue
		}
		id := int(m.wParam)
		if id < 1 || id > len(l.bindings) {
			log.Printf("Warning: WM_HOTKEY with unknown id %d", id)
			continue
		}
		l.dispatch(l.bindings[id-1].Action)
	}
}

func (l *Listener) stop() {
	l.mu.Lock()
	tid := l.threadID
	l.mu.Unlock()
	if tid != 0 {
		procPostThreadMessage.Call(uintptr(tid), WM_QUIT, 0, 0)
	}
}

func unregisterAll(ids []int) {
	for _, id := range ids {
		procUnregisterHotKey.Call(0, uintptr(id))
	}
}
