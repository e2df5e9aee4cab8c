package ui

import "testing"

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}
	tests := []struct {
		name string
		p    Pointer
		want bool
	}{
		{"Inside", Pointer{X: 15, Y: 15}, true},
		{"Top-left corner", Pointer{X: 10, Y: 10}, true},
		{"Bottom-right corner", Pointer{X: 30, Y: 20}, true},
		{"Left of", Pointer{X: 9, Y: 15}, false},
		{"Below", Pointer{X: 15, Y: 21}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v; want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestButton_ClickFiresOncePerPress(t *testing.T) {
	clicks := 0
	b := NewButton(0, 0, 50, 20, "Pause", func() { clicks++ })

	over := Pointer{X: 5, Y: 5, Pressed: true}
	b.Handle(over)
	b.Handle(over) // still held
	if clicks != 1 {
		t.Fatalf("Expected 1 click while held, got %d", clicks)
	}

	b.Handle(Pointer{X: 5, Y: 5})
	b.Handle(over)
	if clicks != 2 {
		t.Errorf("Expected 2 clicks after release and press, got %d", clicks)
	}

	b.Handle(Pointer{X: 500, Y: 5, Pressed: true})
	if clicks != 2 {
		t.Errorf("Press outside the button must not click, got %d", clicks)
	}
}

func TestCheckbox_Toggle(t *testing.T) {
	c := NewCheckbox(100, 100, "Show radius", false)

	c.Handle(Pointer{X: 105, Y: 105, Pressed: true})
	c.Handle(Pointer{X: 105, Y: 105, Pressed: true})
	if !c.Value {
		t.Fatal("Expected checkbox to be checked after one press")
	}
	c.Handle(Pointer{X: 105, Y: 105})
	c.Handle(Pointer{X: 105, Y: 105, Pressed: true})
	if c.Value {
		t.Error("Expected second press to uncheck")
	}
}

func TestPanel_StacksWidgets(t *testing.T) {
	p := NewPanel("Controls", 10, 10, 200)
	b := p.AddButton("Pause", nil)
	c := p.AddCheckbox("Show radius", true)

	if b.X != 10+panelMargin || b.Y != 10+panelTitleHeight {
		t.Errorf("Button placed at %v,%v", b.X, b.Y)
	}
	if c.Y != b.Y+b.Height() {
		t.Errorf("Checkbox Y = %v; want %v", c.Y, b.Y+b.Height())
	}
	if want := float64(panelTitleHeight) + b.Height() + c.Height(); p.Height() != want {
		t.Errorf("Height() = %v; want %v", p.Height(), want)
	}

	// click lands on the checkbox through the panel
	p.Handle(Pointer{X: int(c.X) + 2, Y: int(c.Y) + 2, Pressed: true})
	if c.Value {
		t.Error("Expected panel to forward the click to the checkbox")
	}
}
