//go:build windows

package main

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

var errAlreadyRunning = errors.New("already running")

func acquireInstance() (func(), error) {
	name, err := windows.UTF16PtrFromString("Global\\snapmark-single-instance")
	if err != nil {
		return nil, fmt.Errorf("failed to create mutex name: %w", err)
	}
	h, err := windows.CreateMutex(nil, false, name)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if h != 0 {
			windows.CloseHandle(h)
		}
		return nil, errAlreadyRunning
	}
	if err != nil {
		return nil, err
	}
	return func() { windows.CloseHandle(h) }, nil
}
