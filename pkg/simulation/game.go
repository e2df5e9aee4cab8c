package simulation

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// camera maps world X/Y onto the window, looking down the Z axis.
type camera struct {
	scale  float64 // pixels per world unit
	cx, cy float64 // window center
	depth  float64 // |z| at which boids fade the most
}

// newCamera fits the containment box, or the spawn square on unbounded
// axes, into a width x height window with a small margin.
func newCamera(cfg *Config, width, height int) camera {
	extent := func(min, max float64) float64 {
		if min == max {
			return cfg.SpawnExtent * 1.5
		}
		return math.Max(math.Abs(min), math.Abs(max))
	}
	ex := extent(cfg.Boundary.MinX, cfg.Boundary.MaxX)
	ey := extent(cfg.Boundary.MinY, cfg.Boundary.MaxY)
	ez := extent(cfg.Boundary.MinZ, cfg.Boundary.MaxZ)
	half := 0.45 * math.Min(float64(width), float64(height))
	return camera{
		scale: half / math.Max(math.Max(ex, ey), 1e-9),
		cx:    float64(width) / 2,
		cy:    float64(height) / 2,
		depth: math.Max(ez, 1e-9),
	}
}

// project returns window coordinates. Screen Y grows downwards.
func (c camera) project(p geometry.Vector3D) (x, y float64) {
	return c.cx + p.X*c.scale, c.cy - p.Y*c.scale
}

// shade is 1 on the z = 0 plane and fades towards the far walls.
func (c camera) shade(z float64) float32 {
	return float32(1 - 0.6*math.Min(math.Abs(z)/c.depth, 1))
}

// Game is the ebiten front end. It ticks the world actor once per update and
// draws the latest snapshot it received.
type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan *WorldSnapshot
	lastState  *WorldSnapshot

	cfg    *Config
	camera camera
	paused bool

	// UI Controls
	panel                 *ui.Panel
	widgetPause           *ui.Button
	widgetProtectedRadius *ui.Checkbox
	widgetWalls           *ui.Checkbox

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// GetNewGame spawns the world actor in system and builds the control panel.
func GetNewGame(ctx context.Context, cfg *Config, system actor.ActorSystem) (*Game, error) {
	// Buffer to avoid blocking the world
	snapshotCh := make(chan *WorldSnapshot, 10)

	worldPID, err := system.Spawn(ctx, "world", NewWorldActor(snapshotCh, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		lastState:  &WorldSnapshot{}, // Avoid nil pointer
		cfg:        cfg,
		camera:     newCamera(cfg, cfg.WindowWidth, cfg.WindowHeight),
	}

	g.panel = ui.NewPanel("Controls", 10, 10, 190)
	g.widgetPause = g.panel.AddButton("Pause", g.togglePause)
	g.widgetProtectedRadius = g.panel.AddCheckbox("Protected radius", cfg.DisplayProtectedRadius)
	g.widgetWalls = g.panel.AddCheckbox("Walls", true)
	return g, nil
}

// World is the world actor driven by the game.
func (g *Game) World() *actor.PID { return g.worldPID }

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.widgetPause.Label = "Resume"
	} else {
		g.widgetPause.Label = "Pause"
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()

	// Retrieve Latest State (Non-blocking)
	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
	}

	if !g.paused {
		frame := time.Second / 60
		if tps := ebiten.TPS(); tps > 0 {
			frame = time.Second / time.Duration(tps)
		}
		if err := actor.Tell(g.ctx, g.worldPID, NewTick(frame)); err != nil {
			return fmt.Errorf("failed to tick world: %w", err)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	if g.widgetWalls.Value {
		g.drawWalls(screen)
	}
	for i := range g.lastState.Poses {
		pose := &g.lastState.Poses[i]
		if g.widgetProtectedRadius.Value {
			x, y := g.camera.project(pose.Position)
			vector.StrokeCircle(screen, float32(x), float32(y),
				float32(g.cfg.ProtectedRadius*g.camera.scale), 1,
				color.RGBA{R: 50, G: 100, B: 255, A: 60}, true)
		}
		g.drawBoid(screen, pose)
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nFrame: %d\nBoids: %d\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Frame,
		len(g.lastState.Poses),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, g.cfg.WindowWidth-150, 10)
}

func (g *Game) drawWalls(screen *ebiten.Image) {
	b := g.cfg.Boundary
	if b.MinX == b.MaxX || b.MinY == b.MaxY {
		return
	}
	x0, y0 := g.camera.project(geometry.Vector3D{X: b.MinX, Y: b.MaxY})
	x1, y1 := g.camera.project(geometry.Vector3D{X: b.MaxX, Y: b.MinY})
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0),
		1, color.RGBA{R: 90, G: 90, B: 110, A: 255}, true)
}

// drawBoid draws a triangle pointing along the projected heading, dimmed
// with depth.
func (g *Game) drawBoid(screen *ebiten.Image, pose *flock.Pose) {
	x, y := g.camera.project(pose.Position)
	angle := math.Atan2(-pose.Heading.Y, pose.Heading.X)
	c := g.camera.shade(pose.Position.Z)

	vertex := func(a, r float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x + math.Cos(a)*r),
			DstY: float32(y + math.Sin(a)*r),
			SrcX: 1, SrcY: 1,
			ColorR: c * 0.6, ColorG: c * 0.85, ColorB: c, ColorA: 1,
		}
	}
	vertices := []ebiten.Vertex{
		vertex(angle, 6),
		vertex(angle+2.5, 5),
		vertex(angle-2.5, 5),
	}
	indices := []uint16{0, 1, 2}

	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

// Layout keeps the logical screen at the configured window size.
func (g *Game) Layout(w, h int) (int, int) { return g.cfg.WindowWidth, g.cfg.WindowHeight }
