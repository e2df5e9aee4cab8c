package flock

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/behavior"
)

// NeighborIndex answers radius queries against one snapshot.
// Implementations must return exactly what NeighborsWithin returns.
type NeighborIndex interface {
	// Rebuild prepares the index for snapshot. Called once per tick.
	Rebuild(snapshot []Agent)
	// Within appends the neighbors of self to dst and returns it.
	// It must be safe for concurrent use between two Rebuild calls.
	Within(snapshot []Agent, self Handle, radius float64, dst []behavior.Neighbor) []behavior.Neighbor
}

// NeighborsWithin scans every agent of snapshot and returns those whose
// distance to self is <= radius, self excluded, in handle order.
func NeighborsWithin(snapshot []Agent, self Handle, radius float64) []behavior.Neighbor {
	return Scan{}.Within(snapshot, self, radius, nil)
}

// neighbor builds the record of other as seen from me, and whether it is in range.
func neighbor(me, other *Agent, radius float64) (behavior.Neighbor, bool) {
	offset := me.Position.Sub(other.Position)
	dist := offset.Len()
	if dist > radius {
		return behavior.Neighbor{}, false
	}
	return behavior.Neighbor{
		Handle:   int(other.Handle),
		Position: other.Position,
		Velocity: other.Velocity,
		Offset:   offset,
		Distance: dist,
	}, true
}

// Scan is the O(n) full scan. Stateless.
type Scan struct{}

func (Scan) Rebuild([]Agent) {}

func (Scan) Within(snapshot []Agent, self Handle, radius float64, dst []behavior.Neighbor) []behavior.Neighbor {
	me := &snapshot[self]
	for i := range snapshot {
		if Handle(i) == self {
			continue
		}
		if n, ok := neighbor(me, &snapshot[i], radius); ok {
			dst = append(dst, n)
		}
	}
	return dst
}

type gridKey struct {
	x, y, z int
}

// Grid is a spatial hash: agents are bucketed into cubic cells so a query
// only visits the cells overlapping its radius.
type Grid struct {
	CellSize float64
	cells    map[gridKey][]Handle
}

// NewGrid creates a grid. Use the largest query radius as cell size so a
// query touches at most 3x3x3 cells.
func NewGrid(cellSize float64) *Grid {
	// Clamp to avoid tiny grids or div by zero
	if cellSize < 1e-6 {
		cellSize = 1e-6
	}
	return &Grid{
		CellSize: cellSize,
		cells:    make(map[gridKey][]Handle),
	}
}

func (g *Grid) cellOf(x, y, z float64) gridKey {
	return gridKey{
		x: int(math.Floor(x / g.CellSize)),
		y: int(math.Floor(y / g.CellSize)),
		z: int(math.Floor(z / g.CellSize)),
	}
}

// Rebuild re-buckets the snapshot. Cells left empty by the previous rebuild
// are evicted, the others are truncated so their backing arrays are reused.
// The map therefore never holds more than twice as many cells as agents.
func (g *Grid) Rebuild(snapshot []Agent) {
	for k, hs := range g.cells {
		if len(hs) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = hs[:0]
	}
	for i := range snapshot {
		p := snapshot[i].Position
		key := g.cellOf(p.X, p.Y, p.Z)
		g.cells[key] = append(g.cells[key], Handle(i))
	}
}

// scanCheaper reports whether a query of radius would visit more cells than
// there are agents.
func (g *Grid) scanCheaper(radius float64, n int) bool {
	span := 2*radius/g.CellSize + 1
	return span*span*span > float64(n)
}

func (g *Grid) Within(snapshot []Agent, self Handle, radius float64, dst []behavior.Neighbor) []behavior.Neighbor {
	if g.scanCheaper(radius, len(snapshot)) {
		return Scan{}.Within(snapshot, self, radius, dst)
	}
	me := &snapshot[self]
	p := me.Position
	lo := g.cellOf(p.X-radius, p.Y-radius, p.Z-radius)
	hi := g.cellOf(p.X+radius, p.Y+radius, p.Z+radius)

	start := len(dst)
	for gx := lo.x; gx <= hi.x; gx++ {
		for gy := lo.y; gy <= hi.y; gy++ {
			for gz := lo.z; gz <= hi.z; gz++ {
				for _, h := range g.cells[gridKey{x: gx, y: gy, z: gz}] {
					if h == self {
						continue
					}
					if n, ok := neighbor(me, &snapshot[h], radius); ok {
						dst = append(dst, n)
					}
				}
			}
		}
	}
	// same order as a full scan
	slices.SortFunc(dst[start:], func(a, b behavior.Neighbor) int { return a.Handle - b.Handle })
	return dst
}
