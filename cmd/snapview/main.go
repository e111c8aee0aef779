// Command snapview opens a PNG file, or the image currently on the
// clipboard, in the annotation viewer. It exits when the viewer closes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"

	"snapmark/internal/capture"
	"snapmark/internal/clipboard"
	"snapmark/internal/config"
	"snapmark/internal/eventloop"
	"snapmark/internal/logutil"
	"snapmark/internal/native"
	"snapmark/internal/ui"
)

func main() {
	configPath := flag.String("config", config.Path(), "path to the JSON config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config path] [image.png]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v, using defaults", err)
		cfg = config.Default()
	}
	if logs, err := logutil.Setup(""); err == nil {
		defer logs.Close()
	}
	if err := native.EnableDPIAwareness(); err != nil {
		log.Printf("Warning: %v", err)
	}

	if err := run(cfg, flag.Arg(0)); err != nil {
		native.Alert("snapview", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config, path string) error {
	highlight, err := config.ParseColor(cfg.HighlightColor)
	if err != nil {
		return err
	}
	cb, err := clipboard.Init()
	if err != nil {
		return err
	}

	src, err := loadImage(path, cb)
	if err != nil {
		return err
	}
	img := toRGBA(src)
	if img.Bounds().Empty() {
		return errors.New("image is empty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	driver.Main(func(s screen.Screen) {
		loop := eventloop.New(eventloop.Options{
			Toolkit:      ui.New(s),
			Screen:       capture.ScreenAdapter{},
			Clipboard:    cb,
			Highlight:    highlight,
			ExitWhenIdle: true,
			Alert:        func(msg string) { native.Alert("snapview", msg) },
		})
		origin := image.Point{}
		if d := (capture.ScreenAdapter{}).DisplayBounds(0); !d.Empty() {
			origin = d.Min.Add(d.Size().Sub(img.Bounds().Size()).Div(2))
		}
		c := &capture.Capture{Image: img, Source: img.Bounds().Sub(img.Bounds().Min).Add(origin)}
		if err := loop.ShowCapture(c); err != nil {
			runErr = err
			return
		}
		runErr = loop.Run(ctx)
	})
	return runErr
}

func loadImage(path string, cb *clipboard.System) (image.Image, error) {
	if path == "" {
		img, err := cb.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("no image file given: %w", err)
		}
		return img, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
