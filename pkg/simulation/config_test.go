package simulation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "boids.json", `{
		"population": 50,
		"avoidFactor": 0.01,
		"spatialGrid": true,
		"boundary": {"minX": -4, "maxX": 4, "minY": -4, "maxY": 4, "minZ": 0, "maxZ": 0}
	}`)

	cfg, err := LoadConfig(path, "")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Population != 50 || cfg.AvoidFactor != 0.01 || !cfg.SpatialGrid {
		t.Errorf("Values from file not applied: %+v", cfg)
	}
	if cfg.MaxSpeed != DefaultConfig().MaxSpeed {
		t.Errorf("Missing key should keep default, maxSpeed = %v", cfg.MaxSpeed)
	}
	if b := cfg.Params().Bounds; b.Max.X != 4 || b.Min.Z != 0 || b.Max.Z != 0 {
		t.Errorf("Unexpected bounds %+v", b)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeFile(t, "boids.toml", `
population = 12
maxSpeed = 0.08
minSpeed = 0.02
seed = 99
workers = 2

[boundary]
minX = -10
maxX = 10
minY = -10
maxY = 10
`)

	cfg, err := LoadConfig(path, "")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Population != 12 || cfg.MaxSpeed != 0.08 || cfg.Seed != 99 || cfg.Workers != 2 {
		t.Errorf("Values from file not applied: %+v", cfg)
	}
	if cfg.Boundary.MaxX != 10 || cfg.Boundary.MinZ != 0 {
		t.Errorf("Unexpected boundary %+v", cfg.Boundary)
	}
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name, file, content, want string
	}{
		{"Unknown key", "a.json", `{"speed": 3}`, "validation"},
		{"Wrong type", "b.json", `{"population": "many"}`, "validation"},
		{"Negative factor", "c.toml", "avoidFactor = -1.0\n", "validation"},
		{"Min above max", "d.json", `{"minSpeed": 1, "maxSpeed": 0.5}`, "minSpeed"},
		{"Inverted box", "e.json", `{"boundary": {"minY": 3, "maxY": -3}}`, "validation"},
		{"Broken JSON", "f.json", `{"population": `, "decode"},
		{"Broken TOML", "g.toml", "population = = 3", "toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, tt.file, tt.content), "")
			if err == nil {
				t.Fatal("Expected LoadConfig to fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}

	cfg.Workers = 0
	cfg.MaxSpeed = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !errors.Is(err, flock.ErrInvalidParams) {
		t.Errorf("Expected ErrInvalidParams in %v", err)
	}
	if !strings.Contains(err.Error(), "workers") {
		t.Errorf("Expected workers violation in %v", err)
	}
}

func TestConfig_NewFlock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Population = 30

	a, err := cfg.NewFlock()
	if err != nil {
		t.Fatalf("NewFlock() error = %v", err)
	}
	b, _ := cfg.NewFlock()
	if a.Len() != 30 {
		t.Fatalf("Len() = %d; want 30", a.Len())
	}
	for i, ag := range a.All() {
		if ag.Position != b.All()[i].Position {
			t.Fatal("Same seed produced different spawns")
		}
		if ag.Position.Z != 0 || ag.Position.X < -cfg.SpawnExtent || ag.Position.X > cfg.SpawnExtent {
			t.Errorf("Agent %d spawned outside the spawn square: %v", i, ag.Position)
		}
	}
}

func TestLoadConfig_SampleFiles(t *testing.T) {
	for _, path := range []string{"../../configs/boids.json", "../../configs/flocking.toml"} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			cfg, err := LoadConfig(path, "")
			if err != nil {
				t.Fatalf("LoadConfig(%s) error = %v", path, err)
			}
			if _, err := cfg.NewFlock(); err != nil {
				t.Errorf("NewFlock() error = %v", err)
			}
		})
	}
}
