package flock

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// Params controls the physics constants shared by the whole flock.
type Params struct {
	MaxSpeed float64
	MinSpeed float64

	ProtectedRadius  float64 // separation triggers below this distance
	PerceptionRadius float64 // alignment and cohesion range

	AvoidFactor     float64 // separation strength
	MatchingFactor  float64 // alignment strength, 0 disables
	CenteringFactor float64 // cohesion strength, 0 disables
	TurnFactor      float64 // edge turning strength

	Bounds behavior.Box
}

// DefaultParams matches the scale of the demo scene: boids spawned in a
// 10x10 square on the z = 0 plane, walls at ±8 on every axis.
func DefaultParams() Params {
	return Params{
		MaxSpeed:         0.05,
		MinSpeed:         0.01,
		ProtectedRadius:  0.5,
		PerceptionRadius: 1.5,
		AvoidFactor:      0.005,
		TurnFactor:       0.002,
		Bounds: behavior.Box{
			Min: geometry.Vector3D{X: -8, Y: -8, Z: -8},
			Max: geometry.Vector3D{X: 8, Y: 8, Z: 8},
		},
	}
}

// Validate reports every violated constraint at once.
func (p Params) Validate() error {
	var errs []error
	if p.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("maxSpeed must be positive, got %g", p.MaxSpeed))
	}
	if p.MinSpeed < 0 {
		errs = append(errs, fmt.Errorf("minSpeed must not be negative, got %g", p.MinSpeed))
	}
	if p.MinSpeed > p.MaxSpeed {
		errs = append(errs, fmt.Errorf("minSpeed %g exceeds maxSpeed %g", p.MinSpeed, p.MaxSpeed))
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"protectedRadius", p.ProtectedRadius},
		{"perceptionRadius", p.PerceptionRadius},
		{"avoidFactor", p.AvoidFactor},
		{"matchingFactor", p.MatchingFactor},
		{"centeringFactor", p.CenteringFactor},
		{"turnFactor", p.TurnFactor},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %g", f.name, f.value))
		}
	}
	if err := p.Bounds.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
}

// Rules returns the steering contributors enabled by p.
func (p Params) Rules() []behavior.Rule {
	return behavior.Rules(p.AvoidFactor, p.MatchingFactor, p.CenteringFactor)
}

// NewAgent returns an agent at pos moving at vel with the limits of p.
func (p Params) NewAgent(pos, vel geometry.Vector3D) Agent {
	return Agent{
		Position:         pos,
		Velocity:         vel,
		MaxSpeed:         p.MaxSpeed,
		MinSpeed:         p.MinSpeed,
		ProtectedRadius:  p.ProtectedRadius,
		PerceptionRadius: p.PerceptionRadius,
	}
}

func validateAgent(a Agent) error {
	var errs []error
	if a.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("maxSpeed must be positive, got %g", a.MaxSpeed))
	}
	if a.MinSpeed < 0 || a.MinSpeed > a.MaxSpeed {
		errs = append(errs, fmt.Errorf("minSpeed %g outside [0, %g]", a.MinSpeed, a.MaxSpeed))
	}
	if a.ProtectedRadius < 0 || a.PerceptionRadius < 0 {
		errs = append(errs, fmt.Errorf("radii must not be negative, got %g/%g", a.ProtectedRadius, a.PerceptionRadius))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidAgent, errors.Join(errs...))
}
