//go:build !windows

package main

import "errors"

var errAlreadyRunning = errors.New("already running")

// Other platforms allow several instances; each owns its own hotkeys.
func acquireInstance() (func(), error) {
	return func() {}, nil
}
