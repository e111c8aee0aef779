// Package action names the requests that hotkeys, the tray and the launcher
// buttons post to the UI loop.
package action

type Action int

const (
	Capture Action = iota + 1
	Preview
	Quit
)

func (a Action) String() string {
	switch a {
	case Capture:
		return "capture"
	case Preview:
		return "preview"
	case Quit:
		return "quit"
	}
	return "unknown"
}
