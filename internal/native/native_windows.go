//go:build windows

package native

import (
	"fmt"
	"image"
	"log"
	"syscall"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32                            = windows.NewLazySystemDLL("user32.dll")
	procSetProcessDpiAwarenessContext = user32.NewProc("SetProcessDpiAwarenessContext")
)

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is (HANDLE)(-4)
var dpiAwarenessPerMonitorV2 = ^uintptr(3)

// EnableDPIAwareness makes window and capture coordinates physical pixels so
// that overlay positions match screenshot pixels on scaled displays.
func EnableDPIAwareness() error {
	if procSetProcessDpiAwarenessContext.Find() != nil {
		return fmt.Errorf("SetProcessDpiAwarenessContext not found")
	}
	r, _, _ := procSetProcessDpiAwarenessContext.Call(dpiAwarenessPerMonitorV2)
	if r == 0 {
		return fmt.Errorf("SetProcessDpiAwarenessContext failed")
	}
	return nil
}

type hwndWindow struct {
	hwnd win.HWND
}

// Find locates a top-level window by its exact title.
func Find(title string) (Window, error) {
	p, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return nil, err
	}
	hwnd := win.FindWindow(nil, p)
	if hwnd == 0 {
		return nil, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
	}
	return hwndWindow{hwnd: hwnd}, nil
}

func (w hwndWindow) Float() error {
	style := uint32(win.WS_POPUP | win.WS_VISIBLE)
	win.SetWindowLong(w.hwnd, win.GWL_STYLE, int32(style))
	ex := uint32(win.GetWindowLong(w.hwnd, win.GWL_EXSTYLE)) | win.WS_EX_TOPMOST | win.WS_EX_TOOLWINDOW
	win.SetWindowLong(w.hwnd, win.GWL_EXSTYLE, int32(ex))
	if !win.SetWindowPos(w.hwnd, win.HWND_TOPMOST, 0, 0, 0, 0,
		win.SWP_NOMOVE|win.SWP_NOSIZE|win.SWP_FRAMECHANGED|win.SWP_SHOWWINDOW) {
		return fmt.Errorf("SetWindowPos failed for window %#x", w.hwnd)
	}
	return nil
}

func (w hwndWindow) SetBounds(r image.Rectangle) error {
	if !win.SetWindowPos(w.hwnd, win.HWND_TOPMOST,
		int32(r.Min.X), int32(r.Min.Y), int32(r.Dx()), int32(r.Dy()),
		win.SWP_NOACTIVATE|win.SWP_SHOWWINDOW) {
		return fmt.Errorf("SetWindowPos failed for window %#x", w.hwnd)
	}
	return nil
}

func (w hwndWindow) Hide() bool {
	win.ShowWindow(w.hwnd, win.SW_HIDE)
	return true
}

func (w hwndWindow) Focus() {
	win.SetForegroundWindow(w.hwnd)
}

// CursorPos returns the pointer position in screen coordinates.
func CursorPos() (image.Point, bool) {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return image.Point{}, false
	}
	return image.Pt(int(pt.X), int(pt.Y)), true
}

// Alert shows a modal error dialog and logs the message.
func Alert(title, message string) {
	log.Printf("%s: %s", title, message)
	t, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	m, err := syscall.UTF16PtrFromString(message)
	if err != nil {
		return
	}
	win.MessageBox(0, m, t, win.MB_OK|win.MB_ICONHAND|win.MB_TOPMOST)
}
