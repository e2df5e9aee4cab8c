package simulation

import (
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// WorldActor owns the flock. Ticks are serialized by its mailbox, so the
// flock itself needs no locking.
type WorldActor struct {
	cfg   *Config
	flock *flock.Flock
	// Communication with UI
	snapshotCh chan<- *WorldSnapshot

	elapsed time.Duration

	// --- Benchmark Stats ---
	tickCount   int
	tickRate    float64
	lastLogTime time.Time
}

// NewWorldActor creates the world logic unit. The flock is built in PreStart.
func NewWorldActor(snapshotCh chan<- *WorldSnapshot, cfg *Config) *WorldActor {
	return &WorldActor{
		cfg:         cfg,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	f, err := w.cfg.NewFlock()
	if err != nil {
		return fmt.Errorf("failed to build flock: %w", err)
	}
	w.flock = f
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("World started with %d boids", w.flock.Len())

	case *Tick:
		w.advance(msg.AsDuration())
		w.logBenchmarks(ctx)
		w.pushSnapshot()

	case *GetStats:
		stats, err := w.stats()
		if err != nil {
			ctx.Err(err)
			return
		}
		ctx.Response(stats)

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) advance(dt time.Duration) {
	w.flock.Tick()
	w.elapsed += dt
	w.tickCount++
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	since := time.Since(w.lastLogTime)
	if since < time.Second {
		return
	}
	w.tickRate = float64(w.tickCount) / since.Seconds()
	ctx.Logger().Infof("📊 TICK RATE: %.1f/sec | frame %d | boids %d", w.tickRate, w.flock.Frame(), w.flock.Len())
	w.tickCount = 0
	w.lastLogTime = time.Now()
}

func (w *WorldActor) pushSnapshot() {
	select {
	case w.snapshotCh <- w.buildSnapshot():
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) buildSnapshot() *WorldSnapshot {
	return &WorldSnapshot{
		Frame: w.flock.Frame(),
		Poses: w.flock.Poses(),
	}
}

func (w *WorldActor) stats() (*Stats, error) {
	agents := w.flock.All()
	box := w.flock.Params().Bounds
	mean := 0.0
	outside := 0
	for i := range agents {
		mean += agents[i].Speed()
		if !box.Inside(agents[i].Position) {
			outside++
		}
	}
	if len(agents) > 0 {
		mean /= float64(len(agents))
	}
	return structpb.NewStruct(map[string]interface{}{
		"frame":          float64(w.flock.Frame()),
		"population":     len(agents),
		"elapsed":        w.elapsed.String(),
		"meanSpeed":      mean,
		"outside":        outside,
		"ticksPerSecond": w.tickRate,
	})
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	if w.flock != nil {
		ctx.ActorSystem().Logger().Infof("World is shutdown at frame %d", w.flock.Frame())
	}
	return nil
}
