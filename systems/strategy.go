package systems

import (
	"math/rand"

	"github.com/pthm-cable/particlelab/components"
)

// State is the engine state shared with the active strategy. Strategies
// mutate it in place and must leave len(Particles) unchanged.
type State struct {
	Bounds    components.Bounds
	Particles []components.Particle

	// LiquidPhase is the phase mode regime flag.
	LiquidPhase bool
	// Interference is the neural disruption level in [0, InterferenceMax].
	Interference float64

	Rand *rand.Rand

	Events EventCounters
}

// EventCounters tallies discrete strategy reactions since the engine was created.
type EventCounters struct {
	Respawns     int // optimization particles sent back to a random position
	Explosions   int // entropy pointer releases
	Scattered    int // entropy particles hit by an explosion
	PhaseToggles int
}

// Context is the per-frame view a strategy operates against.
type Context struct {
	Bounds       components.Bounds
	Time         float64
	Config       components.SimConfig
	Pointer      components.Pointer
	PointerSpeed float64

	// Surface is nil for pointer-release dispatch.
	Surface Surface
}

// Strategy is one simulation mode.
type Strategy interface {
	Mode() components.Mode
	// Init runs once on the frame the mode becomes active.
	Init(s *State)
	// Render draws inter-particle effects before any particle moves.
	Render(s *State, ctx *Context)
	// Update advances and paints every particle.
	Update(s *State, ctx *Context)
}

// PointerReleaser is implemented by strategies that react to pointer release.
type PointerReleaser interface {
	OnPointerUp(s *State, ctx *Context)
}
