package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox is a simple UI widget for boolean values
type Checkbox struct {
	Label string
	Value bool
	X, Y  float64
	Size  float64

	latch latch
}

// NewCheckbox creates a new checkbox instance
func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		X:     x,
		Y:     y,
		Size:  16,
	}
}

// Handle toggles Value once per press over the box.
func (c *Checkbox) Handle(p Pointer) {
	box := Rect{X: c.X, Y: c.Y, Width: c.Size, Height: c.Size}
	if c.latch.fire(box.Contains(p), p) {
		c.Value = !c.Value
	}
}

// Height of the checkbox in the panel layout.
func (c *Checkbox) Height() float64 { return c.Size + 6 }

// MoveTo places the top-left corner at (x, y).
func (c *Checkbox) MoveTo(x, y float64) { c.X, c.Y = x, y }

// Draw renders the checkbox
func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.X+2), float32(c.Y+2),
			float32(c.Size-4), float32(c.Size-4),
			color.RGBA{R: 100, G: 200, B: 100, A: 255},
			true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Size+6), int(c.Y))
}
