package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestPollEvents(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	done := make(chan struct{})
	events, stopped := pollEvents(screen, done)

	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}
	select {
	case ev := <-events:
		if key, ok := ev.(*tcell.EventKey); !ok || key.Rune() != 'a' {
			t.Errorf("Unexpected event %#v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Key event was not forwarded")
	}

	// nobody reads events anymore: the pending send must give up on done
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}
	close(done)
	screen.Fini()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Event goroutine leaked after the loop returned")
	}
}
