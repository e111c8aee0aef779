//go:build windows

package tray

import (
	"log"
	"runtime"

	"github.com/getlantern/systray"

	"snapmark/internal/action"
	"snapmark/internal/assets"
	"snapmark/internal/startup"
)

// Run shows the tray icon and blocks until Quit. It locks its goroutine to
// an OS thread because the tray's message loop is thread-bound.
func Run(o Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	systray.Run(func() { onReady(o) }, func() { log.Println("Tray exited") })
	return nil
}

func Quit() {
	systray.Quit()
}

func onReady(o Options) {
	systray.SetIcon(assets.Icon(runtime.GOOS))
	systray.SetTitle("snapmark")
	systray.SetTooltip(tooltip(o))

	mCapture := systray.AddMenuItem("Capture ("+o.CaptureHotkey+")", "Select a screen region")
	mPreview := systray.AddMenuItem("Preview ("+o.PreviewHotkey+")", "Annotate the latest capture")
	systray.AddSeparator()

	mBrowser := systray.AddMenuItem("Open browser preview", "Show the latest clipboard image in a browser")
	if o.Browser == nil {
		mBrowser.Disable()
	}
	mStartup := systray.AddMenuItemCheckbox("Start on login", "Start snapmark when Windows starts", startup.IsEnabled())
	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Quit snapmark")

	go func() {
		for {
			select {
			case <-mCapture.ClickedCh:
				o.Post(action.Capture)
			case <-mPreview.ClickedCh:
				o.Post(action.Preview)
			case <-mBrowser.ClickedCh:
				if o.Browser != nil {
					o.Browser.OpenBrowser()
				}
			case <-mStartup.ClickedCh:
				if mStartup.Checked() {
					if err := startup.Disable(); err != nil {
						log.Printf("Failed to disable startup: %v", err)
					} else {
						mStartup.Uncheck()
					}
				} else {
					if err := startup.Enable(); err != nil {
						log.Printf("Failed to enable startup: %v", err)
					} else {
						mStartup.Check()
					}
				}
			case <-mQuit.ClickedCh:
				o.Post(action.Quit)
				return
			}
		}
	}()
}
