// Package terminal draws a flock top-down in a terminal with tcell.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleWall       = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
)

// arrows indexed by octant, counter-clockwise from +X.
var arrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

const (
	glyphStill    = '·'
	glyphVertical = '•'
)

// View is the world rectangle shown on screen.
type View struct {
	MinX, MaxX float64
	MinY, MaxY float64
	DepthZ     float64 // |z| of the dimmest color
}

// ViewOf fits box, falling back to ±extent on unbounded axes.
func ViewOf(box behavior.Box, extent float64) View {
	span := func(min, max float64) (float64, float64) {
		if min == max {
			return -extent, extent
		}
		return min, max
	}
	v := View{}
	v.MinX, v.MaxX = span(box.Min.X, box.Max.X)
	v.MinY, v.MaxY = span(box.Min.Y, box.Max.Y)
	zmin, zmax := span(box.Min.Z, box.Max.Z)
	v.DepthZ = math.Max(math.Max(math.Abs(zmin), math.Abs(zmax)), 1e-9)
	return v
}

// Cell maps a world position onto a w x h grid, row 0 at the top.
func (v View) Cell(p geometry.Vector3D, w, h int) (col, row int, ok bool) {
	if w <= 0 || h <= 0 || v.MaxX <= v.MinX || v.MaxY <= v.MinY {
		return 0, 0, false
	}
	col = int(math.Floor((p.X - v.MinX) / (v.MaxX - v.MinX) * float64(w)))
	row = int(math.Floor((v.MaxY - p.Y) / (v.MaxY - v.MinY) * float64(h)))
	if col == w && p.X == v.MaxX {
		col--
	}
	if row == h && p.Y == v.MinY {
		row--
	}
	return col, row, col >= 0 && col < w && row >= 0 && row < h
}

// Glyph picks the arrow closest to the projected heading. Boids flying
// mostly along Z get a dot.
func Glyph(heading geometry.Vector3D) rune {
	planar := math.Hypot(heading.X, heading.Y)
	if planar == 0 && heading.Z == 0 {
		return glyphStill
	}
	if planar < math.Abs(heading.Z)*0.5 {
		return glyphVertical
	}
	angle := math.Atan2(heading.Y, heading.X)
	octant := int(math.Round(angle/(math.Pi/4))+8) % 8
	return arrows[octant]
}

// Renderer draws poses onto a tcell screen. The last row is a status line.
type Renderer struct {
	screen tcell.Screen
	view   View
}

func NewRenderer(screen tcell.Screen, view View) *Renderer {
	return &Renderer{screen: screen, view: view}
}

// Draw renders one frame and shows it.
func (r *Renderer) Draw(poses []flock.Pose, status string) {
	r.screen.SetStyle(styleBackground)
	r.screen.Clear()
	w, h := r.screen.Size()
	field := h - 1

	r.drawCorners(w, field)
	for i := range poses {
		p := &poses[i]
		col, row, ok := r.view.Cell(p.Position, w, field)
		if !ok {
			continue
		}
		r.screen.SetContent(col, row, Glyph(p.Heading), nil, r.style(p.Position.Z))
	}

	for x := 0; x < w; x++ {
		r.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
	for i, c := range []rune(status) {
		if i >= w {
			break
		}
		r.screen.SetContent(i, h-1, c, nil, styleStatus)
	}
	r.screen.Show()
}

func (r *Renderer) drawCorners(w, h int) {
	if w < 2 || h < 2 {
		return
	}
	r.screen.SetContent(0, 0, '┌', nil, styleWall)
	r.screen.SetContent(w-1, 0, '┐', nil, styleWall)
	r.screen.SetContent(0, h-1, '└', nil, styleWall)
	r.screen.SetContent(w-1, h-1, '┘', nil, styleWall)
}

// style is bright on the z = 0 plane and dims towards the far walls.
func (r *Renderer) style(z float64) tcell.Style {
	k := 1 - 0.7*math.Min(math.Abs(z)/r.view.DepthZ, 1)
	c := int32(math.Round(255 * k))
	return styleBackground.Foreground(tcell.NewRGBColor(c/2, c*3/4, c))
}
