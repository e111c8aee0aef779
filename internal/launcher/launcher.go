// Package launcher owns the latest capture and turns Capture/Preview
// requests into overlays and viewers.
package launcher

import (
	"fmt"
	"log"

	"snapmark/internal/action"
	"snapmark/internal/capture"
)

// Opener creates the windows the launcher asks for.
type Opener interface {
	OpenSelector() error
	// OpenViewer shows c in a new viewer and returns the viewer's ID.
	OpenViewer(c *capture.Capture) (string, error)
}

// Launcher holds the single latest-capture slot and the viewers it opened.
// It is owned by the UI loop and is not safe for concurrent use.
type Launcher struct {
	opener  Opener
	latest  *capture.Capture
	viewers []string
}

func New(opener Opener) *Launcher {
	return &Launcher{opener: opener}
}

// Publish replaces the latest capture. Viewers already open keep their own
// capture.
func (l *Launcher) Publish(c *capture.Capture) {
	l.latest = c
}

func (l *Launcher) Latest() *capture.Capture { return l.latest }

func (l *Launcher) Capture() error {
	if err := l.opener.OpenSelector(); err != nil {
		return fmt.Errorf("open selector: %w", err)
	}
	return nil
}

// Preview opens a viewer on the latest capture. Without a capture it does
// nothing.
func (l *Launcher) Preview() error {
	if l.latest == nil {
		log.Println("Preview requested before any capture, ignoring")
		return nil
	}
	id, err := l.opener.OpenViewer(l.latest)
	if err != nil {
		return fmt.Errorf("open viewer: %w", err)
	}
	l.viewers = append(l.viewers, id)
	return nil
}

// Do runs a launcher action. Quit is not a launcher action and is reported
// as an error.
func (l *Launcher) Do(a action.Action) error {
	switch a {
	case action.Capture:
		return l.Capture()
	case action.Preview:
		return l.Preview()
	}
	return fmt.Errorf("launcher cannot handle action %s", a)
}

func (l *Launcher) ViewerClosed(id string) {
	for i, v := range l.viewers {
		if v == id {
			l.viewers = append(l.viewers[:i], l.viewers[i+1:]...)
			return
		}
	}
}

func (l *Launcher) OpenViewers() []string {
	return append([]string(nil), l.viewers...)
}
