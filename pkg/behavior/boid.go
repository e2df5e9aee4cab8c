// Package behavior holds the local steering rules of a boid.
//
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
//
// Every rule is an independent force contributor: it reads the state of one
// boid and of the neighbors the caller found for it, and returns a vector the
// caller adds into that boid's acceleration. Rules never mutate anything.
package behavior

import "github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"

// Self is the read-only view a rule gets of the boid it steers.
type Self struct {
	Position         geometry.Vector3D
	Velocity         geometry.Vector3D
	ProtectedRadius  float64 // personal space radius
	PerceptionRadius float64 // how far can it see?
}

// Neighbor is another boid found near Self, as seen from Self.
type Neighbor struct {
	Handle   int
	Position geometry.Vector3D
	Velocity geometry.Vector3D
	Offset   geometry.Vector3D // Self.Position - Position
	Distance float64           // |Offset|
}

// Rule is one steering contributor.
type Rule interface {
	// Steer returns the force for self. neighbors are sorted by handle and
	// may extend beyond the radius the rule cares about.
	Steer(self Self, neighbors []Neighbor) geometry.Vector3D
	// Radius reports how far the rule needs to see around self.
	Radius(self Self) float64
}

// Combine sums the forces of every rule.
func Combine(rules []Rule, self Self, neighbors []Neighbor) geometry.Vector3D {
	var total geometry.Vector3D
	for _, r := range rules {
		total = total.Add(r.Steer(self, neighbors))
	}
	return total
}

// QueryRadius is the largest radius any of the rules needs for self.
func QueryRadius(rules []Rule, self Self) float64 {
	radius := 0.0
	for _, r := range rules {
		if rr := r.Radius(self); rr > radius {
			radius = rr
		}
	}
	return radius
}
