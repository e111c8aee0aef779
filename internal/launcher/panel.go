package launcher

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"snapmark/internal/action"
	"snapmark/internal/window"
)

const (
	PanelWidth  = 250
	PanelHeight = 45

	panelMargin  = 8
	panelSpacing = 10
	buttonRadius = 6
)

var (
	PanelBackground = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	ButtonNormal    = color.RGBA{R: 0x00, G: 0x7a, B: 0xcc, A: 0xff}
	ButtonHover     = color.RGBA{R: 0x00, G: 0x5f, B: 0x9e, A: 0xff}
	ButtonPressed   = color.RGBA{R: 0x00, G: 0x3f, B: 0x6b, A: 0xff}
	ButtonText      = color.White
)

type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is a labelled panel button that fires an action on click. While the
// pointer is over it the button shows its hotkey instead of its label.
type Button struct {
	Label  string
	Hint   string
	Action action.Action
	rect   image.Rectangle
}

func (b *Button) Rect() image.Rectangle { return b.rect }

// Text is what the button shows in state. A hint too wide for the button
// falls back to the label.
func (b *Button) Text(state ButtonState) string {
	if state == StateDefault || b.Hint == "" {
		return b.Label
	}
	d := &font.Drawer{Face: basicfont.Face7x13}
	if d.MeasureString(b.Hint).Ceil() > b.rect.Dx()-2*buttonRadius {
		return b.Label
	}
	return b.Hint
}

func (b *Button) Draw(dst *image.RGBA, state ButtonState) {
	c := ButtonNormal
	switch state {
	case StateHover:
		c = ButtonHover
	case StatePressed:
		c = ButtonPressed
	}
	fillRounded(dst, b.rect, buttonRadius, c)

	text := b.Text(state)
	face := basicfont.Face7x13
	m := face.Metrics()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(ButtonText), Face: face}
	w := d.MeasureString(text).Ceil()
	x := b.rect.Min.X + (b.rect.Dx()-w)/2
	y := b.rect.Min.Y + (b.rect.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// Presenter receives redrawn panel frames.
type Presenter interface {
	Present(frame *image.RGBA)
}

// Panel is the launcher window: a Capture and a Preview button side by side.
type Panel struct {
	buttons []*Button
	hover   int
	pressed int
	host    Presenter
	fire    func(action.Action)
}

// NewPanel lays out the Capture and Preview buttons. hotkeys maps each action
// to the combination shown while its button is hovered; it may be nil.
func NewPanel(host Presenter, fire func(action.Action), hotkeys map[action.Action]string) *Panel {
	p := &Panel{
		buttons: []*Button{
			{Label: "Capture", Hint: hotkeys[action.Capture], Action: action.Capture},
			{Label: "Preview", Hint: hotkeys[action.Preview], Action: action.Preview},
		},
		hover:   -1,
		pressed: -1,
		host:    host,
		fire:    fire,
	}
	w := (PanelWidth - 2*panelMargin - panelSpacing*(len(p.buttons)-1)) / len(p.buttons)
	x := panelMargin
	for _, b := range p.buttons {
		b.rect = image.Rect(x, panelMargin, x+w, PanelHeight-panelMargin)
		x += w + panelSpacing
	}
	return p
}

func (p *Panel) Buttons() []*Button { return p.buttons }

func (p *Panel) hit(pt image.Point) int {
	for i, b := range p.buttons {
		if pt.In(b.rect) {
			return i
		}
	}
	return -1
}

func (p *Panel) Handle(e window.Event) {
	switch e.Kind {
	case window.Move:
		if h := p.hit(e.Pos); h != p.hover {
			p.hover = h
			p.host.Present(p.Frame())
		}
	case window.Press:
		if e.Button != window.ButtonLeft {
			return
		}
		p.pressed = p.hit(e.Pos)
		p.host.Present(p.Frame())
	case window.Release:
		if e.Button != window.ButtonLeft {
			return
		}
		pressed := p.pressed
		p.pressed = -1
		p.hover = p.hit(e.Pos)
		p.host.Present(p.Frame())
		if pressed >= 0 && pressed == p.hover {
			p.fire(p.buttons[pressed].Action)
		}
	case window.Repaint:
		p.host.Present(p.Frame())
	}
}

func (p *Panel) Frame() *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, PanelWidth, PanelHeight))
	draw.Draw(frame, frame.Bounds(), image.NewUniform(PanelBackground), image.Point{}, draw.Src)
	for i, b := range p.buttons {
		state := StateDefault
		switch {
		case i == p.pressed:
			state = StatePressed
		case i == p.hover:
			state = StateHover
		}
		b.Draw(frame, state)
	}
	return frame
}

func fillRounded(dst *image.RGBA, r image.Rectangle, radius int, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if outsideCorner(x-r.Min.X, y-r.Min.Y, r.Dx(), r.Dy(), radius) {
				continue
			}
			dst.SetRGBA(x, y, c)
		}
	}
}

func outsideCorner(x, y, w, h, radius int) bool {
	cx, cy := -1, -1
	switch {
	case x < radius:
		cx = radius
	case x >= w-radius:
		cx = w - radius - 1
	}
	switch {
	case y < radius:
		cy = radius
	case y >= h-radius:
		cy = h - radius - 1
	}
	if cx < 0 || cy < 0 {
		return false
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy > radius*radius
}
