package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a clickable UI button
type Button struct {
	Rect
	Label   string
	OnClick func()

	BGColor    color.RGBA
	HoverColor color.RGBA

	latch latch
	hover bool
}

// NewButton creates a new button instance
func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Rect:       Rect{X: x, Y: y, Width: width, Height: height},
		Label:      label,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

// Handle applies one pointer sample. OnClick runs once per press.
func (b *Button) Handle(p Pointer) {
	b.hover = b.Contains(p)
	if b.latch.fire(b.hover, p) && b.OnClick != nil {
		b.OnClick()
	}
}

// Height of the button in the panel layout.
func (b *Button) Height() float64 { return b.Rect.Height + 6 }

// MoveTo places the top-left corner at (x, y).
func (b *Button) MoveTo(x, y float64) { b.X, b.Y = x, y }

// Draw renders the button
func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.hover {
		bg = b.HoverColor
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.Rect.Width), float32(b.Rect.Height), bg, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Rect.Width), float32(b.Rect.Height),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X)+6, int(b.Y+b.Rect.Height/2)-8)
}
