// Package ui holds the few ebiten widgets the viewer needs to steer a run.
package ui

import "github.com/hajimehoshi/ebiten/v2"

// Pointer is the mouse state widgets react to.
type Pointer struct {
	X, Y    int
	Pressed bool
}

// CurrentPointer reads the pointer from ebiten.
func CurrentPointer() Pointer {
	mx, my := ebiten.CursorPosition()
	return Pointer{X: mx, Y: my, Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)}
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the pointer is over r, edges included.
func (r Rect) Contains(p Pointer) bool {
	return float64(p.X) >= r.X && float64(p.X) <= r.X+r.Width &&
		float64(p.Y) >= r.Y && float64(p.Y) <= r.Y+r.Height
}

// latch fires once per press while the pointer stays over the widget.
type latch struct {
	held bool
}

func (l *latch) fire(over bool, p Pointer) bool {
	if over && p.Pressed {
		if l.held {
			return false
		}
		l.held = true
		return true
	}
	l.held = false
	return false
}
