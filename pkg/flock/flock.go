// Package flock is the simulation core: a registry of agents and the tick
// integrator moving them.
//
// Every tick follows the snapshot-then-apply discipline: all agents read the
// state left by the previous tick, each writes only its own slot of the next
// state, and the next state replaces the current one in a single swap. The
// result therefore never depends on iteration order, and the per-agent work
// can be spread over several goroutines without locking.
package flock

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"golang.org/x/sync/errgroup"
)

// Flock owns a World and advances it one tick at a time.
type Flock struct {
	params  Params
	world   *World
	rules   []behavior.Rule
	index   NeighborIndex
	grid    bool
	workers int

	next    []Agent
	scratch [][]behavior.Neighbor // one neighbor buffer per worker
	frame   uint64
}

// Option customizes a Flock.
type Option func(*Flock)

// WithWorkers spreads the per-agent computation over n goroutines.
func WithWorkers(n int) Option {
	return func(f *Flock) {
		if n > 1 {
			f.workers = n
		}
	}
}

// WithSpatialGrid uses a Grid instead of the full scan. The cell size is the
// largest query radius among the agents registered when the first tick runs.
func WithSpatialGrid() Option {
	return func(f *Flock) { f.grid = true }
}

// WithRules replaces the rules derived from Params.
func WithRules(rules ...behavior.Rule) Option {
	return func(f *Flock) { f.rules = rules }
}

// New validates params and returns an empty flock ready for registration.
func New(params Params, opts ...Option) (*Flock, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	f := &Flock{
		params:  params,
		world:   NewWorld(0),
		rules:   params.Rules(),
		index:   Scan{},
		workers: 1,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.scratch = make([][]behavior.Neighbor, f.workers)
	return f, nil
}

// Params returns the validated parameters.
func (f *Flock) Params() Params { return f.params }

// World exposes the registry.
func (f *Flock) World() *World { return f.world }

// Frame is the number of completed ticks.
func (f *Flock) Frame() uint64 { return f.frame }

// Len returns the population size.
func (f *Flock) Len() int { return f.world.Len() }

// All returns a copy of every agent in handle order.
func (f *Flock) All() []Agent { return f.world.All() }

// Register adds a fully specified agent.
func (f *Flock) Register(a Agent) (Handle, error) {
	return f.world.Register(a)
}

// Spawn registers an agent at pos moving at vel, using the flock limits.
func (f *Flock) Spawn(pos, vel geometry.Vector3D) (Handle, error) {
	return f.world.Register(f.params.NewAgent(pos, vel))
}

// Scatter spawns n agents on the z = 0 plane, uniformly within ±extent on X
// and Y, each with a random heading and a speed within the flock limits.
func (f *Flock) Scatter(rng *rand.Rand, n int, extent float64) error {
	for i := 0; i < n; i++ {
		pos := geometry.Vector3D{
			X: (rng.Float64()*2 - 1) * extent,
			Y: (rng.Float64()*2 - 1) * extent,
		}
		vel := geometry.Vector3D{
			X: rng.Float64()*2 - 1,
			Y: rng.Float64()*2 - 1,
			Z: rng.Float64()*2 - 1,
		}.ClampLength(f.params.MinSpeed, f.params.MaxSpeed)
		if _, err := f.Spawn(pos, vel); err != nil {
			return err
		}
	}
	return nil
}

// Poses returns the renderer view of every agent.
func (f *Flock) Poses() []Pose {
	agents := f.world.agents
	poses := make([]Pose, len(agents))
	for i := range agents {
		poses[i] = PoseOf(agents[i])
	}
	return poses
}

// Tick advances every agent once. The first call seals the world.
func (f *Flock) Tick() {
	f.world.Seal()
	if f.grid {
		// population is frozen from here on
		f.index = NewGrid(f.queryRadius())
		f.grid = false
	}
	snapshot := f.world.agents
	n := len(snapshot)
	if cap(f.next) < n {
		f.next = make([]Agent, n)
	}
	next := f.next[:n]

	f.index.Rebuild(snapshot)

	if f.workers == 1 || n < 2*f.workers {
		f.scratch[0] = f.stepRange(snapshot, next, 0, n, f.scratch[0])
	} else {
		var g errgroup.Group
		chunk := (n + f.workers - 1) / f.workers
		for w := 0; w < f.workers; w++ {
			lo, hi := w*chunk, min((w+1)*chunk, n)
			if lo >= hi {
				break
			}
			g.Go(func() error {
				f.scratch[w] = f.stepRange(snapshot, next, lo, hi, f.scratch[w])
				return nil
			})
		}
		_ = g.Wait() // steps cannot fail
	}

	f.next = f.world.swap(next)
	f.frame++
}

// queryRadius is the largest radius any registered agent queries with.
func (f *Flock) queryRadius() float64 {
	r := 0.0
	for i := range f.world.agents {
		r = max(r, behavior.QueryRadius(f.rules, f.world.agents[i].self()))
	}
	return r
}

func (f *Flock) stepRange(snapshot, next []Agent, lo, hi int, scratch []behavior.Neighbor) []behavior.Neighbor {
	for i := lo; i < hi; i++ {
		next[i], scratch = f.step(snapshot, Handle(i), scratch)
	}
	return scratch
}

// step computes the next state of agent h from snapshot alone.
func (f *Flock) step(snapshot []Agent, h Handle, scratch []behavior.Neighbor) (Agent, []behavior.Neighbor) {
	a := snapshot[h]
	a.Acceleration = geometry.Vector3D{}

	// 1. forces
	self := a.self()
	near := f.index.Within(snapshot, h, behavior.QueryRadius(f.rules, self), scratch[:0])
	a.ApplyForce(behavior.Combine(f.rules, self, near))

	// 2. + 3. velocity, kept within the speed band
	a.Velocity = a.Velocity.Add(a.Acceleration).ClampLength(a.MinSpeed, a.MaxSpeed)

	// 4. soft walls
	a.Velocity = f.params.Bounds.Contain(a.Position, a.Velocity, f.params.TurnFactor)

	// 5. move
	a.Position = a.Position.Add(a.Velocity)

	// 6. forces never carry over
	a.Acceleration = geometry.Vector3D{}
	return a, near
}
