package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/encoding/protojson"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file")
	schemaFile := flag.String("schema", "", "JSON schema for the configuration (embedded by default)")
	verbose := flag.Bool("v", false, "log actor system activity to stderr")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile, *schemaFile); err != nil {
			log.Fatal(err)
		}
	}
	// fail before opening a window
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var logger golog.Logger = golog.DiscardLogger
	if *verbose {
		logger = golog.New(golog.InfoLevel, os.Stderr)
	}

	system, err := actor.NewActorSystem("BoidsWorld", actor.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	if err := run(context.Background(), cfg, system, play); err != nil {
		log.Fatal(err)
	}
}

// run starts system, drives the world through play and prints the final
// stats. The system is stopped on every return path.
func run(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem, play func(*simulation.Game) error) error {
	if err := system.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = system.Stop(ctx) }()

	game, err := simulation.GetNewGame(ctx, cfg, system)
	if err != nil {
		return err
	}
	if err := play(game); err != nil {
		return err
	}
	printStats(ctx, game.World())
	return nil
}

// play opens the window and blocks until it is closed.
func play(game *simulation.Game) error {
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Boids 3D")
	return ebiten.RunGame(game)
}

// printStats dumps the final world stats as JSON.
func printStats(ctx context.Context, pid *actor.PID) {
	reply, err := actor.Ask(ctx, pid, &simulation.GetStats{}, time.Second)
	if err != nil {
		return
	}
	out, err := protojson.MarshalOptions{Multiline: true}.Marshal(reply)
	if err != nil {
		return
	}
	fmt.Println(string(out))
}
