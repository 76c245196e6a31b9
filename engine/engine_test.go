package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
	"github.com/pthm-cable/particlelab/systems"
)

func init() {
	config.MustInit("")
}

var testBounds = components.Bounds{Width: 800, Height: 600}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(testBounds, WithRand(rand.New(rand.NewSource(42))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func simConfig(mode components.Mode, count int) components.SimConfig {
	return components.SimConfig{Mode: mode, ParticleCount: count, GravityStrength: 0.5}
}

func idle() components.Pointer {
	return components.OffscreenPointer()
}

func held(x, y float64) components.Pointer {
	return components.Pointer{X: x, Y: y, Down: true}
}

func TestNewRejectsInvalidBounds(t *testing.T) {
	for _, b := range []components.Bounds{
		{Width: 0, Height: 600},
		{Width: 800, Height: -1},
		{Width: math.NaN(), Height: 600},
	} {
		if _, err := New(b); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("New(%v) error = %v, want ErrInvalidBounds", b, err)
		}
	}
}

func TestStepPanicsOnNilSurface(t *testing.T) {
	e := newTestEngine(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil surface")
		}
	}()
	e.Step(nil, simConfig(components.ModeEntropy, 10), idle())
}

func TestTimeAdvancesByFixedStep(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()
	for i := 0; i < 100; i++ {
		e.Step(rec, simConfig(components.ModeEntropy, 10), idle())
	}
	if math.Abs(e.Time()-1.0) > 1e-9 {
		t.Errorf("Time() = %v after 100 frames, want 1.0", e.Time())
	}
	if e.Frames() != 100 {
		t.Errorf("Frames() = %d, want 100", e.Frames())
	}
}

func TestModeSwitchReplacesPopulation(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()

	e.Step(rec, simConfig(components.ModeEntropy, 500), idle())
	if e.Len() != 500 {
		t.Fatalf("entropy population = %d, want 500", e.Len())
	}

	e.Step(rec, simConfig(components.ModeNeural, 500), idle())
	if e.Len() != 120 {
		t.Fatalf("neural population = %d, want 120", e.Len())
	}
	if mode, ok := e.Mode(); !ok || mode != components.ModeNeural {
		t.Errorf("Mode() = %v, %v", mode, ok)
	}

	cols, rows := components.NeuralLattice(120, testBounds)
	stepX := testBounds.Width / float64(cols+1)
	stepY := testBounds.Height / float64(rows+1)
	for i, p := range e.Particles() {
		wantX := float64(i%cols+1) * stepX
		wantY := float64(i/cols+1) * stepY
		if math.Abs(p.OriginX-wantX) > 1 || math.Abs(p.OriginY-wantY) > 1 {
			t.Fatalf("particle %d origin (%v, %v), want lattice (%v, %v) ±1", i, p.OriginX, p.OriginY, wantX, wantY)
		}
		if p.Color != components.NeuralViolet && p.Color != components.NeuralDark {
			t.Fatalf("particle %d colour %+v is not a neural colour", i, p.Color)
		}
	}

	e.Step(rec, simConfig(components.ModePhase, 500), idle())
	for i, p := range e.Particles() {
		if p.Size != components.PhaseCellSize {
			t.Fatalf("phase particle %d size = %v, want %v", i, p.Size, components.PhaseCellSize)
		}
	}
}

func TestPopulationCaps(t *testing.T) {
	tests := []struct {
		mode components.Mode
		want int
	}{
		{components.ModeNeural, 120},
		{components.ModeOptimization, 2000},
		{components.ModeEntropy, 4000},
		{components.ModePhase, 4000},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			e := newTestEngine(t)
			rec := systems.NewRecorder()
			for i := 0; i < 5; i++ {
				e.Step(rec, simConfig(tt.mode, 4000), idle())
				if e.Len() > tt.want {
					t.Fatalf("population = %d, exceeds %d", e.Len(), tt.want)
				}
			}
			if e.Len() != tt.want {
				t.Errorf("population = %d, want %d", e.Len(), tt.want)
			}
		})
	}
}

func TestGrowthIsBoundedPerFrame(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()

	e.Step(rec, simConfig(components.ModeEntropy, 100), idle())
	if e.Len() != 100 {
		t.Fatalf("initial population = %d, want 100", e.Len())
	}

	const target = 320
	prev := e.Len()
	for frame := 0; frame < 8; frame++ {
		e.Step(rec, simConfig(components.ModeEntropy, target), idle())
		want := prev + min(50, target-prev)
		if e.Len() != want {
			t.Fatalf("frame %d: population = %d, want %d", frame, e.Len(), want)
		}
		prev = e.Len()
	}
	if e.Len() != target {
		t.Errorf("population settled at %d, want %d", e.Len(), target)
	}
}

func TestShrinkTruncates(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()

	e.Step(rec, simConfig(components.ModeEntropy, 400), idle())
	e.Step(rec, simConfig(components.ModeEntropy, 100), idle())

	if e.Len() != 100 {
		t.Errorf("population = %d, want 100 after shrinking", e.Len())
	}
}

func TestNegativeCountClampsToEmpty(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()

	e.Step(rec, simConfig(components.ModeEntropy, -5), idle())

	if e.Len() != 0 {
		t.Errorf("population = %d, want 0", e.Len())
	}
}

func TestEntropyStaysInBounds(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()

	for frame := 0; frame < 200; frame++ {
		ptr := idle()
		if frame%50 < 30 {
			ptr = held(400+float64(frame), 300)
		}
		e.Step(rec, simConfig(components.ModeEntropy, 300), ptr)
		if frame%50 == 30 {
			e.OnPointerUp(simConfig(components.ModeEntropy, 300), ptr)
		}
		for i, p := range e.Particles() {
			if !testBounds.Contains(p.X, p.Y) {
				t.Fatalf("frame %d: particle %d at (%v, %v) outside bounds", frame, i, p.X, p.Y)
			}
		}
	}
}

func TestInterferenceBounds(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()
	cfg := simConfig(components.ModeNeural, 50)

	for frame := 0; frame < 80; frame++ {
		e.Step(rec, cfg, held(400, 300))
		if i := e.Interference(); i < 0 || i > 50 {
			t.Fatalf("interference = %v, out of [0, 50]", i)
		}
	}
	if e.Interference() != 50 {
		t.Fatalf("interference = %v after holding, want 50", e.Interference())
	}

	prev := e.Interference()
	for e.Interference() > 0 {
		e.Step(rec, cfg, idle())
		if e.Interference() >= prev {
			t.Fatalf("interference %v -> %v, want strict decrease while released", prev, e.Interference())
		}
		prev = e.Interference()
	}

	for frame := 0; frame < 10; frame++ {
		e.Step(rec, cfg, held(400, 300))
	}
	e.Step(rec, simConfig(components.ModeEntropy, 50), held(400, 300))
	if e.Interference() != 0 {
		t.Errorf("interference = %v outside neural, want 0", e.Interference())
	}
}

func TestPhaseToggleThroughEngine(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()
	cfg := simConfig(components.ModePhase, 100)
	e.Step(rec, cfg, idle())

	for n := 1; n <= 7; n++ {
		e.OnPointerUp(cfg, idle())
		if want := n%2 == 1; e.LiquidPhase() != want {
			t.Fatalf("after %d releases liquid = %v, want %v", n, e.LiquidPhase(), want)
		}
	}

	// Re-entering phase mode starts solid.
	e.Step(rec, simConfig(components.ModeEntropy, 100), idle())
	e.Step(rec, cfg, idle())
	if e.LiquidPhase() {
		t.Error("re-entering phase mode should reset to solid")
	}
}

func TestEntropyScenario(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()
	cfg := simConfig(components.ModeEntropy, 1)
	e.Step(rec, cfg, idle())

	p := &e.state.Particles[0]
	p.X, p.Y = 110, 100
	p.VX, p.VY = 0, 0
	p.Density = 15

	e.Step(rec, cfg, held(100, 100))

	if got := e.Particles()[0].VX; got >= 0 {
		t.Errorf("VX = %v, want negative (toward pointer)", got)
	}
}

func TestOptimizationScenario(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()
	cfg := simConfig(components.ModeOptimization, 1)
	e.Step(rec, cfg, idle())

	p := &e.state.Particles[0]
	p.X, p.Y = testBounds.Width+40, 100
	p.VX, p.VY = 3, 0
	before := e.Events().Respawns

	e.Step(rec, cfg, idle())

	got := e.Particles()[0]
	if !testBounds.Contains(got.X, got.Y) {
		t.Errorf("particle at (%v, %v), want respawned in bounds", got.X, got.Y)
	}
	if got.VX != 0 || got.VY != 0 {
		t.Errorf("velocity = (%v, %v), want zero", got.VX, got.VY)
	}
	if e.Events().Respawns != before+1 {
		t.Errorf("respawns = %d, want %d", e.Events().Respawns, before+1)
	}
}

func TestClearPolicy(t *testing.T) {
	cfg := config.Cfg()
	tests := []struct {
		mode       components.Mode
		wantClears int
		wantFill   components.Color
	}{
		{components.ModeNeural, 1, components.Color{}},
		{components.ModeOptimization, 0, cfg.Engine.BackgroundTrails.Color()},
		{components.ModeEntropy, 0, cfg.Engine.BackgroundDefault.Color()},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			e := newTestEngine(t)
			// Empty population so the only fill is the background.
			rec := systems.NewRecorder()
			e.Step(rec, simConfig(tt.mode, 0), idle())

			if rec.Clears != tt.wantClears {
				t.Errorf("clears = %d, want %d", rec.Clears, tt.wantClears)
			}
			if tt.wantClears == 0 {
				if rec.Rects != 1 || rec.LastFill != tt.wantFill {
					t.Errorf("background fill = %+v (%d rects), want %+v", rec.LastFill, rec.Rects, tt.wantFill)
				}
				if rec.LastRect != [4]float64{0, 0, testBounds.Width, testBounds.Height} {
					t.Errorf("background rect = %v, want full surface", rec.LastRect)
				}
			}
		})
	}
}

func TestResize(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()
	e.Step(rec, simConfig(components.ModeEntropy, 200), idle())

	small := components.Bounds{Width: 200, Height: 150}
	if err := e.Resize(small); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if e.Bounds() != small {
		t.Errorf("Bounds() = %v, want %v", e.Bounds(), small)
	}
	if err := e.Resize(components.Bounds{}); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("Resize(zero) error = %v, want ErrInvalidBounds", err)
	}
	if e.Bounds() != small {
		t.Errorf("invalid resize changed bounds to %v", e.Bounds())
	}

	// Strays are wrapped back within a couple of frames.
	for i := 0; i < 2; i++ {
		e.Step(rec, simConfig(components.ModeEntropy, 200), idle())
	}
	for i, p := range e.Particles() {
		if !small.Contains(p.X, p.Y) {
			t.Fatalf("particle %d at (%v, %v) outside resized bounds", i, p.X, p.Y)
		}
	}
}

type phaseLog []string

func (l *phaseLog) StartPhase(phase string) { *l = append(*l, phase) }

func TestTracerPhases(t *testing.T) {
	var log phaseLog
	e, err := New(testBounds, WithTracer(&log), WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatal(err)
	}
	e.Step(systems.Discard{}, simConfig(components.ModeEntropy, 10), idle())

	want := []string{"reconcile", "clear", "render", "update"}
	if len(log) != len(want) {
		t.Fatalf("phases = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("phase %d = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestPointerUpOnNonReactiveMode(t *testing.T) {
	e := newTestEngine(t)
	rec := systems.NewRecorder()
	cfg := simConfig(components.ModeNeural, 20)
	e.Step(rec, cfg, idle())
	before := append([]components.Particle(nil), e.Particles()...)

	e.OnPointerUp(cfg, held(400, 300))

	for i, p := range e.Particles() {
		if p.X != before[i].X || p.VX != before[i].VX {
			t.Fatalf("particle %d changed on neural pointer release", i)
		}
	}
}
