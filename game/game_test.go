package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
	"github.com/pthm-cable/particlelab/systems"
)

func init() {
	config.MustInit("")
}

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	return g
}

func TestHeadlessRunGrowsPopulation(t *testing.T) {
	sim := components.SimConfig{Mode: components.ModeEntropy, ParticleCount: 300, GravityStrength: 0.5}
	g := newHeadless(t, Options{Seed: 7, Sim: &sim})
	defer g.Unload()

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 10 {
		t.Errorf("Tick() = %d, want 10", g.Tick())
	}
	if n := g.Engine().Len(); n != 300 {
		t.Errorf("population = %d, want 300", n)
	}
}

func TestHeadlessFlushesWindows(t *testing.T) {
	sim := components.SimConfig{Mode: components.ModePhase, ParticleCount: 100}
	g := newHeadless(t, Options{Seed: 1, Sim: &sim, StatsWindowSec: 0.5})
	defer g.Unload()

	// 30 frames per window at 60fps.
	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}

	stats := g.LastStats()
	if stats.WindowEnd != 30 {
		t.Fatalf("WindowEnd = %d, want 30", stats.WindowEnd)
	}
	if stats.Mode != "phase" || stats.Particles != 100 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.DrawCalls < 100 {
		t.Errorf("DrawCalls = %v, want at least one per particle", stats.DrawCalls)
	}
}

func TestSampleUsesSteppedMode(t *testing.T) {
	sim := components.SimConfig{Mode: components.ModePhase, ParticleCount: 300}
	g := newHeadless(t, Options{Seed: 5, Sim: &sim})
	defer g.Unload()

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}
	// A toolbar click lands between the step and the window flush.
	g.sim.Mode = components.ModeNeural
	g.sim.ParticleCount = 50

	s := g.sample()
	if s.Mode != components.ModePhase {
		t.Errorf("Mode = %v, want phase", s.Mode)
	}
	if s.Requested != 300 {
		t.Errorf("Requested = %d, want 300 (neural cap is %d)", s.Requested, config.Cfg().Engine.NeuralMaxParticles)
	}
	if len(s.Particles) != 300 {
		t.Errorf("Particles = %d, want 300", len(s.Particles))
	}
}

func TestHeadlessAutopilotReleasesReachEngine(t *testing.T) {
	cfg := config.Cfg()
	sim := components.SimConfig{Mode: components.ModePhase, ParticleCount: 100}
	g := newHeadless(t, Options{Seed: 3, Sim: &sim})
	defer g.Unload()

	frames := cfg.Autopilot.PressEvery + cfg.Autopilot.HoldFrames + 2
	for i := 0; i < frames; i++ {
		g.UpdateHeadless()
	}

	if got := g.Engine().Events().PhaseToggles; got != 1 {
		t.Errorf("PhaseToggles = %d, want 1 after one autopilot press", got)
	}
	if !g.Engine().LiquidPhase() {
		t.Error("phase mode should be liquid after one release")
	}
}

func TestHeadlessOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	sim := components.SimConfig{Mode: components.ModeOptimization, ParticleCount: 200}
	g := newHeadless(t, Options{Seed: 2, Sim: &sim, OutputDir: dir, StatsWindowSec: 0.25})

	for i := 0; i < 60; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv", "report.txt"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestCountingSurface(t *testing.T) {
	rec := systems.NewRecorder()
	s := &countingSurface{Surface: rec}
	b := components.Bounds{Width: 10, Height: 10}

	s.Clear(b)
	s.FillRect(0, 0, 1, 1, components.Color{})
	s.FillCircle(0, 0, 1, components.Color{})
	s.StrokeLine(0, 0, 1, 1, 1, components.Color{})
	s.FillText("0101", 0, 0, 10, components.Color{})

	if s.calls != 5 || rec.Calls() != 5 {
		t.Errorf("calls = %d, forwarded = %d, want 5/5", s.calls, rec.Calls())
	}
}

func TestHeadlessBookmarksMelt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	sim := components.SimConfig{Mode: components.ModePhase, ParticleCount: 100}
	g := newHeadless(t, Options{Seed: 5, Sim: &sim, OutputDir: dir, StatsWindowSec: 0.5})

	// One solid window, a release, then one liquid window.
	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}
	g.release()
	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	if !g.LastStats().Liquid {
		t.Fatal("second window should be liquid")
	}
	data, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatalf("reading bookmarks.csv: %v", err)
	}
	if !strings.Contains(string(data), "melt,60,phase") {
		t.Errorf("bookmarks.csv = %q, want a melt row at frame 60", data)
	}
}
