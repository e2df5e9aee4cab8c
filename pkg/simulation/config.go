package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema []byte

const configSchemaURL = "config.schema.json"

// Boundary is the containment box. An axis with min == max is unbounded.
type Boundary struct {
	MinX float64 `json:"minX" toml:"minX"`
	MaxX float64 `json:"maxX" toml:"maxX"`
	MinY float64 `json:"minY" toml:"minY"`
	MaxY float64 `json:"maxY" toml:"maxY"`
	MinZ float64 `json:"minZ" toml:"minZ"`
	MaxZ float64 `json:"maxZ" toml:"maxZ"`
}

// Box converts the boundary into the containment box.
func (b Boundary) Box() behavior.Box {
	return behavior.Box{
		Min: geometry.Vector3D{X: b.MinX, Y: b.MinY, Z: b.MinZ},
		Max: geometry.Vector3D{X: b.MaxX, Y: b.MaxY, Z: b.MaxZ},
	}
}

// Config is the run configuration, loaded from a JSON or TOML file.
type Config struct {
	Population int `json:"population" toml:"population"`

	// Physics
	MaxSpeed         float64 `json:"maxSpeed" toml:"maxSpeed"`
	MinSpeed         float64 `json:"minSpeed" toml:"minSpeed"`
	ProtectedRadius  float64 `json:"protectedRadius" toml:"protectedRadius"`   // Personal space radius
	PerceptionRadius float64 `json:"perceptionRadius" toml:"perceptionRadius"` // How far can they see?

	AvoidFactor     float64 `json:"avoidFactor" toml:"avoidFactor"`         // Separation strength
	MatchingFactor  float64 `json:"matchingFactor" toml:"matchingFactor"`   // Alignment strength
	CenteringFactor float64 `json:"centeringFactor" toml:"centeringFactor"` // Cohesion strength
	TurnFactor      float64 `json:"turnFactor" toml:"turnFactor"`           // Edge turning strength

	Boundary Boundary `json:"boundary" toml:"boundary"`

	// Spawning
	Seed        uint64  `json:"seed" toml:"seed"`
	SpawnExtent float64 `json:"spawnExtent" toml:"spawnExtent"`

	// Execution
	Workers     int  `json:"workers" toml:"workers"`
	SpatialGrid bool `json:"spatialGrid" toml:"spatialGrid"`

	// Window
	WindowWidth            int  `json:"windowWidth" toml:"windowWidth"`
	WindowHeight           int  `json:"windowHeight" toml:"windowHeight"`
	DisplayProtectedRadius bool `json:"displayProtectedRadius" toml:"displayProtectedRadius"`
}

// DefaultConfig returns the flock defaults with 160 boids in an 800x800 window.
func DefaultConfig() *Config {
	p := flock.DefaultParams()
	return &Config{
		Population:       160,
		MaxSpeed:         p.MaxSpeed,
		MinSpeed:         p.MinSpeed,
		ProtectedRadius:  p.ProtectedRadius,
		PerceptionRadius: p.PerceptionRadius,
		AvoidFactor:      p.AvoidFactor,
		MatchingFactor:   p.MatchingFactor,
		CenteringFactor:  p.CenteringFactor,
		TurnFactor:       p.TurnFactor,
		Boundary: Boundary{
			MinX: p.Bounds.Min.X, MaxX: p.Bounds.Max.X,
			MinY: p.Bounds.Min.Y, MaxY: p.Bounds.Max.Y,
			MinZ: p.Bounds.Min.Z, MaxZ: p.Bounds.Max.Z,
		},
		Seed:         1,
		SpawnExtent:  5,
		Workers:      1,
		WindowWidth:  800,
		WindowHeight: 800,
	}
}

// Params extracts the physics constants.
func (c *Config) Params() flock.Params {
	return flock.Params{
		MaxSpeed:         c.MaxSpeed,
		MinSpeed:         c.MinSpeed,
		ProtectedRadius:  c.ProtectedRadius,
		PerceptionRadius: c.PerceptionRadius,
		AvoidFactor:      c.AvoidFactor,
		MatchingFactor:   c.MatchingFactor,
		CenteringFactor:  c.CenteringFactor,
		TurnFactor:       c.TurnFactor,
		Bounds:           c.Boundary.Box(),
	}
}

// Validate checks what the schema cannot express, like minSpeed <= maxSpeed.
func (c *Config) Validate() error {
	var errs []error
	if c.Population < 0 {
		errs = append(errs, fmt.Errorf("population must not be negative, got %d", c.Population))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.SpawnExtent < 0 {
		errs = append(errs, fmt.Errorf("spawnExtent must not be negative, got %g", c.SpawnExtent))
	}
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NewFlock builds a populated flock from c, failing fast on invalid values.
func (c *Config) NewFlock() (*flock.Flock, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []flock.Option{flock.WithWorkers(c.Workers)}
	if c.SpatialGrid {
		opts = append(opts, flock.WithSpatialGrid())
	}
	f, err := flock.New(c.Params(), opts...)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(c.Seed, c.Seed))
	if err := f.Scatter(rng, c.Population, c.SpawnExtent); err != nil {
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}
	return f, nil
}

// LoadConfig loads configuration from a JSON or TOML file and validates it
// against the schema. An empty schemaFile selects the embedded schema.
// Keys missing from the file keep their DefaultConfig value.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := compileSchema(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	raw, err := readConfig(configFile)
	if err != nil {
		return nil, err
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func compileSchema(schemaFile string) (*jsonschema.Schema, error) {
	if schemaFile != "" {
		return jsonschema.Compile(schemaFile)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(configSchemaURL, bytes.NewReader(configSchema)); err != nil {
		return nil, err
	}
	return c.Compile(configSchemaURL)
}

// readConfig returns the file content as JSON. TOML files go through a
// generic map so both formats meet the same schema.
func readConfig(configFile string) ([]byte, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(configFile), ".toml") {
		return b, nil
	}

	var m map[string]interface{}
	if _, err := toml.Decode(string(b), &m); err != nil {
		return nil, fmt.Errorf("failed to decode config toml: %w", err)
	}
	if m == nil {
		m = map[string]interface{}{}
	}
	out, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config toml: %w", err)
	}
	return out, nil
}
