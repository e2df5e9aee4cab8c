package simulation

import (
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages understood by WorldActor. goakt needs proto.Message values, the
// well-known types cover everything the world exchanges.
type (
	// Tick advances the world once. The duration is the frame time of the
	// driver and only feeds the stats.
	Tick = durationpb.Duration
	// GetStats asks the world for a Stats reply.
	GetStats = emptypb.Empty
	// Stats is the reply to GetStats. Fields: frame, population, elapsed,
	// meanSpeed, outside (boids beyond a wall) and ticksPerSecond.
	Stats = structpb.Struct
)

// NewTick wraps a frame time in a Tick.
var NewTick = durationpb.New

// WorldSnapshot is what the world pushes to the renderer after each tick.
// It is never mutated after being sent.
type WorldSnapshot struct {
	Frame uint64
	Poses []flock.Pose
}
