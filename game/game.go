// Package game hosts the playground engine: window loop, input capture,
// UI and telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
	"github.com/pthm-cable/particlelab/engine"
	"github.com/pthm-cable/particlelab/renderer"
	"github.com/pthm-cable/particlelab/systems"
	"github.com/pthm-cable/particlelab/telemetry"
	"github.com/pthm-cable/particlelab/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	Headless       bool
	Plot           bool // print the run report on Unload

	// Initial control values. Zero value = playground section of the config.
	Sim *components.SimConfig
}

// Game holds the host state around one engine.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	engine  *engine.Engine
	sim     components.SimConfig
	pointer components.Pointer

	// Rendering (nil when headless)
	canvas        *renderer.Canvas
	flowOverlay   *renderer.FlowOverlay
	originOverlay *renderer.OriginOverlay

	// Headless drawing target
	recorder *systems.Recorder

	// UI (nil when headless)
	hud        *ui.HUD
	controls   *ui.ControlsPanel
	overlays   *ui.OverlayRegistry
	perfPanel  *ui.PerfPanel
	statsPanel *ui.StatsPanel

	autopilot *Autopilot

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	report        *telemetry.Report
	bookmarks     *telemetry.BookmarkDetector
	lastStats     telemetry.WindowStats

	// State
	tick         int64
	drawCalls    int                  // surface calls in the last stepped frame
	stepSim      components.SimConfig // controls the last frame was stepped with
	paused       bool
	stepped      bool // a tick is open in the perf collector
	pressOnScene bool // the current press started over the simulation, not the UI
	screenWidth  float32
	screenHeight float32
}

// NewGameWithOptions creates a game. In graphical mode the raylib window must
// already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	g := &Game{
		cfg:     cfg,
		opts:    opts,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		sim:     cfg.SimConfig(),
		pointer: components.OffscreenPointer(),
	}
	if opts.Sim != nil {
		g.sim = opts.Sim.Sanitize()
	}

	g.screenWidth = float32(cfg.Screen.Width)
	g.screenHeight = float32(cfg.Screen.Height)
	if !opts.Headless {
		g.canvas = renderer.NewCanvas(int32(cfg.Screen.Width), int32(cfg.Screen.Height))
		g.flowOverlay = renderer.NewFlowOverlay(32)
		g.originOverlay = renderer.NewOriginOverlay()
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(cfg.Playground, 260)
		g.overlays = ui.NewOverlayRegistry()
		g.perfPanel = ui.NewPerfPanel(16, 64)
		g.statsPanel = ui.NewStatsPanel(16, 64)
	} else {
		g.recorder = systems.NewRecorder()
		g.autopilot = NewAutopilot(cfg.Autopilot)
	}

	// Telemetry
	windowFrames := cfg.Derived.WindowFrames
	if opts.StatsWindowSec > 0 {
		windowFrames = max(int(opts.StatsWindowSec*float64(cfg.Screen.TargetFPS)), 1)
	}
	g.collector = telemetry.NewCollector(windowFrames)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.report = telemetry.NewReport(cfg.Telemetry.ReportHistory)
	g.bookmarks = telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory, cfg.Engine.InterferenceMax)

	eng, err := engine.New(g.bounds(),
		engine.WithConfig(cfg),
		engine.WithRand(g.rng),
		engine.WithTracer(g.perfCollector),
	)
	if err != nil {
		g.Unload()
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	g.engine = eng

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.Unload()
		return nil, fmt.Errorf("creating output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	return g, nil
}

// bounds returns the current drawing surface size.
func (g *Game) bounds() components.Bounds {
	if g.canvas != nil {
		return g.canvas.Bounds()
	}
	return components.Bounds{Width: float64(g.screenWidth), Height: float64(g.screenHeight)}
}

// Update processes input and advances the simulation one frame.
func (g *Game) Update() {
	g.handleInput()
	g.capturePointer()

	if g.paused {
		return
	}

	g.perfCollector.StartTick()
	g.stepped = true

	g.canvas.Begin()
	surface := &countingSurface{Surface: g.canvas}
	g.engine.Step(surface, g.sim, g.pointer)
	g.canvas.End()

	g.afterStep(surface.calls)
}

// UpdateHeadless advances one frame without raylib, driving the pointer
// with the autopilot.
func (g *Game) UpdateHeadless() {
	if g.autopilot.Advance(g.bounds(), &g.pointer, &g.sim) {
		g.release()
	}

	g.perfCollector.StartTick()
	g.recorder.Reset()
	g.engine.Step(g.recorder, g.sim, g.pointer)
	g.afterStep(g.recorder.Calls())

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perfCollector.EndTick(g.engine.Len(), g.drawCalls)
}

// afterStep records the frame that just ran.
func (g *Game) afterStep(drawCalls int) {
	g.tick++
	g.drawCalls = drawCalls
	g.stepSim = g.sim
	g.collector.RecordFrame(g.sim.Mode, g.pointer, g.engine.Interference(), drawCalls)
}

// release clears the held flag and forwards the release to the engine.
func (g *Game) release() {
	g.pointer.Release()
	g.collector.RecordRelease()
	g.engine.OnPointerUp(g.sim, g.pointer)
}

// Unload releases GPU resources, closes output files and prints the report.
func (g *Game) Unload() {
	if g.canvas != nil {
		g.canvas.Unload()
	}
	if g.outputManager != nil {
		if g.report != nil && g.report.Len() > 0 {
			if err := g.outputManager.WriteReport(g.report); err != nil {
				slog.Error("failed to write report", "error", err)
			}
		}
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		slog.Info("output written", "dir", g.outputManager.Dir())
	}
	if g.opts.Plot && g.report != nil && g.report.Len() > 0 {
		fmt.Println(g.report.Render())
	}
}

// Tick returns the number of stepped frames.
func (g *Game) Tick() int64 {
	return g.tick
}

// Engine returns the hosted engine.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Sim returns the current control values.
func (g *Game) Sim() components.SimConfig {
	return g.sim
}

// LastStats returns the most recently flushed telemetry window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}
