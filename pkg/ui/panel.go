package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is anything a Panel can stack.
type Widget interface {
	Handle(p Pointer)
	Draw(screen *ebiten.Image)
	Height() float64
	MoveTo(x, y float64)
}

// Panel stacks widgets vertically under a title.
type Panel struct {
	Title   string
	X, Y    float64
	Width   float64
	Widgets []Widget

	BGColor     color.RGBA
	BorderColor color.RGBA
}

const (
	panelTitleHeight = 22
	panelMargin      = 8
)

// NewPanel creates an empty panel with its top-left corner at (x, y).
func NewPanel(title string, x, y, width float64) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddButton appends a button spanning the panel width.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(0, 0, p.Width-2*panelMargin, 20, label, onClick)
	p.add(b)
	return b
}

// AddCheckbox appends a checkbox.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(0, 0, label, value)
	p.add(c)
	return c
}

func (p *Panel) add(w Widget) {
	w.MoveTo(p.X+panelMargin, p.Y+p.Height())
	p.Widgets = append(p.Widgets, w)
}

// Height is the current height of the panel content.
func (p *Panel) Height() float64 {
	h := float64(panelTitleHeight)
	for _, w := range p.Widgets {
		h += w.Height()
	}
	return h
}

// Update handles input for all widgets
func (p *Panel) Update() { p.Handle(CurrentPointer()) }

// Handle forwards one pointer sample to every widget.
func (p *Panel) Handle(ptr Pointer) {
	for _, w := range p.Widgets {
		w.Handle(ptr)
	}
}

// Draw renders the panel and all widgets
func (p *Panel) Draw(screen *ebiten.Image) {
	h := float32(p.Height() + panelMargin)
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), h, p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), h, 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelMargin), int(p.Y+4))

	for _, w := range p.Widgets {
		w.Draw(screen)
	}
}
