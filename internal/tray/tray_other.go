//go:build !windows

package tray

import "errors"

var ErrUnsupported = errors.New("system tray is only supported on Windows")

func Run(Options) error { return ErrUnsupported }

func Quit() {}
