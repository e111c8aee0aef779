// Command snapmark captures a screen region to the clipboard and opens it in
// an annotation viewer.
package main

//go:generate go run github.com/akavel/rsrc@v0.10.2 -ico ../../internal/assets/icon.ico -arch amd64 -o rsrc_windows_amd64.syso
//go:generate go run github.com/akavel/rsrc@v0.10.2 -ico ../../internal/assets/icon.ico -arch arm64 -o rsrc_windows_arm64.syso

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"

	"snapmark/internal/action"
	"snapmark/internal/capture"
	"snapmark/internal/clipboard"
	"snapmark/internal/config"
	"snapmark/internal/eventloop"
	"snapmark/internal/hotkey"
	"snapmark/internal/logutil"
	"snapmark/internal/native"
	"snapmark/internal/preview"
	"snapmark/internal/tray"
	"snapmark/internal/ui"
)

func main() {
	configPath := flag.String("config", config.Path(), "path to the JSON config file")
	flag.Parse()

	if created, err := config.EnsureFile(*configPath); err != nil {
		log.Printf("Warning: %v", err)
	} else if created {
		log.Printf("Wrote default config to %s", *configPath)
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v, using defaults", err)
		cfg = config.Default()
	}

	logDir := ""
	if cfg.EnableFileLogging {
		logDir = config.Dir()
	}
	logs, err := logutil.Setup(logDir)
	if err != nil {
		log.Printf("Warning: file logging disabled: %v", err)
	} else {
		defer logs.Close()
	}

	release, err := acquireInstance()
	if errors.Is(err, errAlreadyRunning) {
		log.Println("Another instance of snapmark is already running")
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Failed to create instance lock: %v", err)
	}
	defer release()

	if err := native.EnableDPIAwareness(); err != nil {
		log.Printf("Warning: %v", err)
	}

	if err := run(cfg); err != nil {
		native.Alert(eventloop.AppTitle, "snapmark failed to start: "+err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	highlight, err := config.ParseColor(cfg.HighlightColor)
	if err != nil {
		return err
	}
	bindings, err := bindings(cfg)
	if err != nil {
		return err
	}
	cb, err := clipboard.Init()
	if err != nil {
		return err
	}

	var mirror eventloop.Mirror
	var browser tray.Browser
	if cfg.EnablePreview {
		srv := preview.New(cfg.PreviewAddr)
		if err := srv.Start(); err != nil {
			log.Printf("Warning: browser preview disabled: %v", err)
		} else {
			mirror, browser = srv, srv
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					log.Printf("Preview shutdown: %v", err)
				}
			}()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hotkeys := map[action.Action]string{
		action.Capture: cfg.CaptureHotkey,
		action.Preview: cfg.PreviewHotkey,
	}

	var runErr error
	driver.Main(func(s screen.Screen) {
		loop := eventloop.New(eventloop.Options{
			Toolkit:      ui.New(s),
			Screen:       capture.ScreenAdapter{},
			Clipboard:    cb,
			Mirror:       mirror,
			CaptureDelay: cfg.CaptureDelay(),
			Highlight:    highlight,
			ShowLauncher: true,
			Hotkeys:      hotkeys,
			Alert:        func(msg string) { native.Alert(eventloop.AppTitle, msg) },
		})

		listener, err := hotkey.Start(bindings, func(a action.Action) {
			if !loop.Post(a) {
				log.Printf("Dropped %s: UI loop is busy", a)
			}
		})
		if err != nil {
			runErr = fmt.Errorf("failed to register hotkeys: %w", err)
			return
		}
		defer listener.Stop()

		if cfg.EnableTray {
			go func() {
				err := tray.Run(tray.Options{
					CaptureHotkey: cfg.CaptureHotkey,
					PreviewHotkey: cfg.PreviewHotkey,
					Post:          loop.Post,
					Browser:       browser,
				})
				if err != nil {
					log.Printf("Tray disabled: %v", err)
				}
			}()
			defer tray.Quit()
		}

		log.Printf("snapmark running: %s captures, %s previews", cfg.CaptureHotkey, cfg.PreviewHotkey)
		runErr = loop.Run(ctx)
	})
	return runErr
}

func bindings(cfg *config.Config) ([]hotkey.Binding, error) {
	captureCombo, err := hotkey.Parse(cfg.CaptureHotkey)
	if err != nil {
		return nil, fmt.Errorf("capture hotkey: %w", err)
	}
	previewCombo, err := hotkey.Parse(cfg.PreviewHotkey)
	if err != nil {
		return nil, fmt.Errorf("preview hotkey: %w", err)
	}
	if captureCombo == previewCombo {
		return nil, fmt.Errorf("capture and preview hotkeys are both %s", captureCombo)
	}
	return []hotkey.Binding{
		{Combo: captureCombo, Action: action.Capture},
		{Combo: previewCombo, Action: action.Preview},
	}, nil
}
