package flock

import (
	"errors"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

func testAgent(x, y, z float64) Agent {
	return DefaultParams().NewAgent(geometry.Vector3D{X: x, Y: y, Z: z}, geometry.Vector3D{X: 0.02})
}

func TestWorld_Register(t *testing.T) {
	w := NewWorld(3)

	a := testAgent(1, 2, 3)
	a.Acceleration = geometry.Vector3D{X: 5}
	h0, err := w.Register(a)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	h1, _ := w.Register(testAgent(4, 5, 6))

	if h0 != 0 || h1 != 1 {
		t.Errorf("Expected handles 0 and 1, got %d and %d", h0, h1)
	}
	if w.Len() != 2 {
		t.Errorf("Len() = %d; want 2", w.Len())
	}

	got, ok := w.Agent(h0)
	if !ok {
		t.Fatal("Expected agent 0 to be found")
	}
	if !got.Acceleration.IsZero() {
		t.Errorf("Expected supplied acceleration to be discarded, got %v", got.Acceleration)
	}
	if got.Handle != h0 || got.Position != (geometry.Vector3D{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Unexpected stored agent %+v", got)
	}

	if _, ok := w.Agent(7); ok {
		t.Error("Expected unknown handle lookup to fail")
	}
	if _, ok := w.Agent(-1); ok {
		t.Error("Expected negative handle lookup to fail")
	}
}

func TestWorld_RegisterRejectsInvalidAgent(t *testing.T) {
	w := NewWorld(0)

	tests := []struct {
		name   string
		mutate func(a *Agent)
	}{
		{"Zero max speed", func(a *Agent) { a.MaxSpeed = 0 }},
		{"Min above max", func(a *Agent) { a.MinSpeed = a.MaxSpeed * 2 }},
		{"Negative min", func(a *Agent) { a.MinSpeed = -1 }},
		{"Negative protected radius", func(a *Agent) { a.ProtectedRadius = -0.1 }},
		{"Negative perception radius", func(a *Agent) { a.PerceptionRadius = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAgent(0, 0, 0)
			tt.mutate(&a)
			if _, err := w.Register(a); !errors.Is(err, ErrInvalidAgent) {
				t.Errorf("Register() error = %v; want ErrInvalidAgent", err)
			}
		})
	}
	if w.Len() != 0 {
		t.Errorf("Rejected agents must not be stored, Len() = %d", w.Len())
	}
}

func TestWorld_Sealed(t *testing.T) {
	w := NewWorld(1)
	if _, err := w.Register(testAgent(0, 0, 0)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	w.Seal()
	if !w.Sealed() {
		t.Error("Expected world to report sealed")
	}
	if _, err := w.Register(testAgent(1, 1, 1)); !errors.Is(err, ErrSealed) {
		t.Errorf("Register() after Seal error = %v; want ErrSealed", err)
	}
	if w.Len() != 1 {
		t.Errorf("Population changed after Seal: %d", w.Len())
	}
}

func TestWorld_AllIsStableCopy(t *testing.T) {
	w := NewWorld(3)
	for i := 0; i < 3; i++ {
		if _, err := w.Register(testAgent(float64(i), 0, 0)); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	all := w.All()
	for i, a := range all {
		if a.Handle != Handle(i) || a.Position.X != float64(i) {
			t.Errorf("All()[%d] = %+v; registration order not preserved", i, a)
		}
	}

	all[0].Position.X = 99
	if got, _ := w.Agent(0); got.Position.X != 0 {
		t.Error("Mutating the All() result must not change the world")
	}
}
