package flock

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// Handle is the stable index of an agent inside its World.
type Handle int

// Agent is the physics state of one boid. It carries no presentation data:
// renderers keep their own per-handle state.
type Agent struct {
	Handle       Handle
	Position     geometry.Vector3D
	Velocity     geometry.Vector3D
	Acceleration geometry.Vector3D // per-tick accumulator, zero between ticks

	MaxSpeed         float64
	MinSpeed         float64
	ProtectedRadius  float64
	PerceptionRadius float64
}

// ApplyForce adds force into the acceleration accumulator.
func (a *Agent) ApplyForce(force geometry.Vector3D) {
	a.Acceleration = a.Acceleration.Add(force)
}

// Speed is the magnitude of the velocity.
func (a *Agent) Speed() float64 {
	return a.Velocity.Len()
}

// Heading is the unit velocity, or the zero vector when standing still.
func (a *Agent) Heading() geometry.Vector3D {
	return a.Velocity.Normalize()
}

func (a *Agent) self() behavior.Self {
	return behavior.Self{
		Position:         a.Position,
		Velocity:         a.Velocity,
		ProtectedRadius:  a.ProtectedRadius,
		PerceptionRadius: a.PerceptionRadius,
	}
}

// Pose is what a renderer needs to place and orient one agent mesh.
type Pose struct {
	Handle      Handle
	Position    geometry.Vector3D
	Heading     geometry.Vector3D
	Orientation mgl64.Quat // rotates +Y onto Heading
}

// PoseOf derives the renderer view of a.
func PoseOf(a Agent) Pose {
	heading := a.Heading()
	return Pose{
		Handle:      a.Handle,
		Position:    a.Position,
		Heading:     heading,
		Orientation: heading.Orientation(),
	}
}
