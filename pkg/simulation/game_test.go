package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

func TestCamera_project(t *testing.T) {
	cfg := DefaultConfig() // walls at ±8
	c := newCamera(cfg, 800, 600)

	tests := []struct {
		name  string
		p     geometry.Vector3D
		wantX float64
		wantY float64
	}{
		{"Origin is the center", geometry.Vector3D{}, 400, 300},
		{"Right wall", geometry.Vector3D{X: 8}, 400 + 270, 300},
		{"Top wall is up", geometry.Vector3D{Y: 8}, 400, 300 - 270},
		{"Z is ignored", geometry.Vector3D{X: -8, Z: 5}, 400 - 270, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := c.project(tt.p)
			if !floatEquals(x, tt.wantX) || !floatEquals(y, tt.wantY) {
				t.Errorf("project(%v) = (%v, %v); want (%v, %v)", tt.p, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCamera_UnboundedUsesSpawnExtent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Boundary = Boundary{}
	c := newCamera(cfg, 400, 400)
	x, _ := c.project(geometry.Vector3D{X: cfg.SpawnExtent * 1.5})
	if !floatEquals(x, 200+180) {
		t.Errorf("Spawn square edge projected to %v; want 380", x)
	}
}

func TestCamera_shade(t *testing.T) {
	c := newCamera(DefaultConfig(), 800, 800)
	if c.shade(0) != 1 {
		t.Errorf("shade(0) = %v; want 1", c.shade(0))
	}
	if c.shade(8) != c.shade(-8) || c.shade(8) >= c.shade(4) {
		t.Error("Expected shade to fade symmetrically with |z|")
	}
	if c.shade(100) != c.shade(8) {
		t.Error("Expected shade to saturate past the walls")
	}
}

func floatEquals(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestGame_Layout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowWidth, cfg.WindowHeight = 640, 480
	g := &Game{cfg: cfg}
	if w, h := g.Layout(1920, 1080); w != 640 || h != 480 {
		t.Errorf("Layout() = %dx%d; want 640x480", w, h)
	}
}
