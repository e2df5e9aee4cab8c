// Command boids runs the flock in a terminal.
//
// Keys: space pauses, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/terminal"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file")
	schemaFile := flag.String("schema", "", "JSON schema for the configuration (embedded by default)")
	logFile := flag.String("log", "", "write logs to this file")
	fps := flag.Int("fps", 30, "frames per second")
	flag.Parse()

	if err := run(*configFile, *schemaFile, *logFile, *fps); err != nil {
		fmt.Fprintln(os.Stderr, "boids:", err)
		os.Exit(1)
	}
}

func run(configFile, schemaFile, logFile string, fps int) error {
	logger, closeLog, err := newLogger(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := simulation.DefaultConfig()
	if configFile != "" {
		if cfg, err = simulation.LoadConfig(configFile, schemaFile); err != nil {
			return err
		}
	}
	f, err := cfg.NewFlock()
	if err != nil {
		return err
	}
	logger.Infof("Flock ready with %d boids", f.Len())

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	renderer := terminal.NewRenderer(screen, terminal.ViewOf(cfg.Params().Bounds, cfg.SpawnExtent))
	loop(screen, renderer, f, max(fps, 1))
	logger.Infof("Stopped at frame %d", f.Frame())
	return nil
}

// pollEvents forwards screen events until the screen is finalized or done is
// closed. stopped is closed once the forwarding goroutine has returned.
func pollEvents(screen tcell.Screen, done <-chan struct{}) (events <-chan tcell.Event, stopped <-chan struct{}) {
	out := make(chan tcell.Event)
	exit := make(chan struct{})
	go func() {
		defer close(exit)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case out <- ev:
			case <-done:
				return
			}
		}
	}()
	return out, exit
}

func loop(screen tcell.Screen, renderer *terminal.Renderer, f *flock.Flock, fps int) {
	done := make(chan struct{})
	defer close(done)
	events, _ := pollEvents(screen, done)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	paused := false

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					paused = !paused
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			if !paused {
				f.Tick()
			}
			status := fmt.Sprintf(" frame %d | boids %d | space: pause, q: quit", f.Frame(), f.Len())
			if paused {
				status += " | PAUSED"
			}
			renderer.Draw(f.Poses(), status)
		}
	}
}

func newLogger(path string) (golog.Logger, func(), error) {
	if path == "" {
		return golog.DiscardLogger, func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return golog.New(golog.InfoLevel, file), func() { _ = file.Close() }, nil
}
