package game

import (
	"math"
	"testing"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
)

func TestAutopilotOrbit(t *testing.T) {
	a := NewAutopilot(config.AutopilotConfig{OrbitRadius: 0.25, OrbitSpeed: math.Pi / 2})
	b := components.Bounds{Width: 800, Height: 400}

	tests := []struct {
		frame int64
		x, y  float64
	}{
		{0, 500, 200},
		{1, 400, 300},
		{2, 300, 200},
	}
	for _, tt := range tests {
		x, y := a.Position(b, tt.frame)
		if math.Abs(x-tt.x) > 1e-9 || math.Abs(y-tt.y) > 1e-9 {
			t.Errorf("Position(frame %d) = (%v, %v), want (%v, %v)", tt.frame, x, y, tt.x, tt.y)
		}
	}
}

func TestAutopilotPressSchedule(t *testing.T) {
	a := NewAutopilot(config.AutopilotConfig{OrbitRadius: 0.1, OrbitSpeed: 0.1, PressEvery: 10, HoldFrames: 3})
	b := components.Bounds{Width: 100, Height: 100}
	ptr := components.OffscreenPointer()
	sim := components.SimConfig{Mode: components.ModeEntropy, ParticleCount: 10}

	var downFrames, releases int
	for frame := 0; frame < 30; frame++ {
		if a.Advance(b, &ptr, &sim) {
			releases++
			ptr.Release()
		}
		if ptr.Down {
			downFrames++
		}
	}

	// Presses at frames 10 and 20, each held for 3 frames.
	if releases != 2 {
		t.Errorf("releases = %d, want 2", releases)
	}
	if downFrames != 6 {
		t.Errorf("down frames = %d, want 6", downFrames)
	}
	if sim.Mode != components.ModeEntropy {
		t.Errorf("mode changed to %v with mode_every = 0", sim.Mode)
	}
}

func TestAutopilotCyclesModes(t *testing.T) {
	a := NewAutopilot(config.AutopilotConfig{ModeEvery: 5})
	b := components.Bounds{Width: 100, Height: 100}
	ptr := components.OffscreenPointer()
	sim := components.SimConfig{Mode: components.ModeOptimization}

	for frame := 0; frame <= 5; frame++ {
		a.Advance(b, &ptr, &sim)
	}
	if sim.Mode != components.ModeEntropy {
		t.Errorf("mode after one switch = %v, want entropy (wraps)", sim.Mode)
	}
}

func TestAutopilotMovesPointer(t *testing.T) {
	a := NewAutopilot(config.AutopilotConfig{OrbitRadius: 0.3, OrbitSpeed: 0.02})
	b := components.Bounds{Width: 800, Height: 600}
	ptr := components.OffscreenPointer()
	var sim components.SimConfig

	a.Advance(b, &ptr, &sim)
	if !b.Contains(ptr.X, ptr.Y) {
		t.Fatalf("pointer (%v, %v) not on surface", ptr.X, ptr.Y)
	}
	a.Advance(b, &ptr, &sim)
	if ptr.Speed() == 0 {
		t.Error("pointer velocity not derived from autopilot moves")
	}
}
