package behavior

import "github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"

// Separation pushes a boid away from neighbors inside its protected radius.
// Each neighbor contributes its unit offset weighted by 1/distance, so closer
// neighbors push harder. The averaged sum is normalized and scaled by
// AvoidFactor.
type Separation struct {
	AvoidFactor float64
}

func (s Separation) Steer(self Self, neighbors []Neighbor) geometry.Vector3D {
	var sum geometry.Vector3D
	count := 0

	for _, n := range neighbors {
		if n.Distance > self.ProtectedRadius {
			continue
		}
		// coincident boids have no direction to flee along
		if n.Distance == 0 {
			continue
		}
		sum = sum.Add(n.Offset.Normalize().Mul(1 / n.Distance))
		count++
	}

	if count == 0 {
		return geometry.Vector3D{}
	}
	avg := sum.Mul(1 / float64(count))
	if avg.IsZero() {
		return geometry.Vector3D{}
	}
	return avg.Normalize().Mul(s.AvoidFactor)
}

func (s Separation) Radius(self Self) float64 { return self.ProtectedRadius }

// Alignment steers toward the average heading of visible neighbors.
type Alignment struct {
	MatchingFactor float64
}

func (a Alignment) Steer(self Self, neighbors []Neighbor) geometry.Vector3D {
	var avg geometry.Vector3D
	count := 0
	for _, n := range neighbors {
		if n.Distance > self.PerceptionRadius {
			continue
		}
		avg = avg.Add(n.Velocity)
		count++
	}
	if count == 0 {
		return geometry.Vector3D{}
	}
	avg = avg.Mul(1 / float64(count))
	return avg.Sub(self.Velocity).Mul(a.MatchingFactor)
}

func (a Alignment) Radius(self Self) float64 { return self.PerceptionRadius }

// Cohesion steers toward the center of mass of visible neighbors.
type Cohesion struct {
	CenteringFactor float64
}

func (c Cohesion) Steer(self Self, neighbors []Neighbor) geometry.Vector3D {
	var center geometry.Vector3D
	count := 0
	for _, n := range neighbors {
		if n.Distance > self.PerceptionRadius {
			continue
		}
		center = center.Add(n.Position)
		count++
	}
	if count == 0 {
		return geometry.Vector3D{}
	}
	center = center.Mul(1 / float64(count))
	return center.Sub(self.Position).Mul(c.CenteringFactor)
}

func (c Cohesion) Radius(self Self) float64 { return self.PerceptionRadius }

// Rules builds the contributor list for the given factors. Separation is
// always present; alignment and cohesion only when their factor is positive.
func Rules(avoid, matching, centering float64) []Rule {
	rules := []Rule{Separation{AvoidFactor: avoid}}
	if matching > 0 {
		rules = append(rules, Alignment{MatchingFactor: matching})
	}
	if centering > 0 {
		rules = append(rules, Cohesion{CenteringFactor: centering})
	}
	return rules
}
