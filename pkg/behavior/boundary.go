package behavior

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// Box is the axis-aligned containment volume.
// An axis whose Min equals its Max is unbounded.
type Box struct {
	Min geometry.Vector3D
	Max geometry.Vector3D
}

// Validate rejects inverted extents.
func (b Box) Validate() error {
	var errs []error
	if b.Max.X < b.Min.X {
		errs = append(errs, fmt.Errorf("boundary maxX %.2f < minX %.2f", b.Max.X, b.Min.X))
	}
	if b.Max.Y < b.Min.Y {
		errs = append(errs, fmt.Errorf("boundary maxY %.2f < minY %.2f", b.Max.Y, b.Min.Y))
	}
	if b.Max.Z < b.Min.Z {
		errs = append(errs, fmt.Errorf("boundary maxZ %.2f < minZ %.2f", b.Max.Z, b.Min.Z))
	}
	return errors.Join(errs...)
}

// Contain nudges vel back toward the box when pos has left it (soft turn).
// Axes are handled independently; pos itself is never clamped.
func (b Box) Contain(pos, vel geometry.Vector3D, turnFactor float64) geometry.Vector3D {
	vel.X += softTurn(pos.X, b.Min.X, b.Max.X, turnFactor)
	vel.Y += softTurn(pos.Y, b.Min.Y, b.Max.Y, turnFactor)
	vel.Z += softTurn(pos.Z, b.Min.Z, b.Max.Z, turnFactor)
	return vel
}

// Inside reports whether pos lies within every bounded axis.
func (b Box) Inside(pos geometry.Vector3D) bool {
	return softTurn(pos.X, b.Min.X, b.Max.X, 1) == 0 &&
		softTurn(pos.Y, b.Min.Y, b.Max.Y, 1) == 0 &&
		softTurn(pos.Z, b.Min.Z, b.Max.Z, 1) == 0
}

func softTurn(p, min, max, turn float64) float64 {
	if min == max {
		return 0
	}
	if p > max {
		return -turn
	}
	if p < min {
		return turn
	}
	return 0
}
