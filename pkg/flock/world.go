package flock

import "github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"

// World is the registry owning the fixed population of a run.
// Agents are stored in an arena and addressed by Handle.
type World struct {
	agents []Agent
	sealed bool
}

// NewWorld creates an empty registry with room for capacity agents.
func NewWorld(capacity int) *World {
	return &World{agents: make([]Agent, 0, capacity)}
}

// Register adds a during setup and returns its handle. The supplied
// acceleration is discarded.
func (w *World) Register(a Agent) (Handle, error) {
	if w.sealed {
		return -1, ErrSealed
	}
	if err := validateAgent(a); err != nil {
		return -1, err
	}
	a.Handle = Handle(len(w.agents))
	a.Acceleration = geometry.Vector3D{}
	w.agents = append(w.agents, a)
	return a.Handle, nil
}

// Seal freezes the population. Further Register calls fail.
func (w *World) Seal() { w.sealed = true }

// Sealed reports whether the population is frozen.
func (w *World) Sealed() bool { return w.sealed }

// Len returns the population size.
func (w *World) Len() int { return len(w.agents) }

// All returns a copy of every agent in registration order.
func (w *World) All() []Agent {
	out := make([]Agent, len(w.agents))
	copy(out, w.agents)
	return out
}

// Agent looks up a single agent by handle.
func (w *World) Agent(h Handle) (Agent, bool) {
	if h < 0 || int(h) >= len(w.agents) {
		return Agent{}, false
	}
	return w.agents[h], true
}

// swap installs next as the current population and hands back the previous
// backing array so the integrator can reuse it.
func (w *World) swap(next []Agent) []Agent {
	prev := w.agents
	w.agents = next
	return prev
}
