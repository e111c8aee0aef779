//go:build !windows

package startup

import "errors"

var ErrUnsupported = errors.New("start on login is only supported on Windows")

func IsEnabled() bool { return false }

func Enable() error { return ErrUnsupported }

func Disable() error { return ErrUnsupported }
