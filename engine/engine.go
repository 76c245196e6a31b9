// Package engine drives the particle playground one frame at a time.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
	"github.com/pthm-cable/particlelab/systems"
	"github.com/pthm-cable/particlelab/telemetry"
)

// ErrInvalidBounds is returned for a surface with a non-positive side.
var ErrInvalidBounds = errors.New("invalid surface bounds")

// PhaseTracer receives the name of each step phase as it begins.
// Implemented by telemetry.PerfCollector.
type PhaseTracer interface {
	StartPhase(phase string)
}

// Engine owns the particle population and dispatches each frame to the
// strategy for the requested mode. It is not safe for concurrent use; the
// host calls Step and OnPointerUp from its frame loop.
type Engine struct {
	cfg      config.EngineConfig
	registry *systems.Registry
	tracer   PhaseTracer

	state    systems.State
	time     float64
	frames   int64
	lastMode components.Mode
	started  bool // false until the first Step populates a mode

	bgDefault components.Color
	bgTrails  components.Color
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for spawning and strategy noise.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.state.Rand = r }
}

// WithRegistry replaces the default strategy set.
func WithRegistry(r *systems.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithTracer reports step phases to t.
func WithTracer(t PhaseTracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithConfig uses cfg instead of the global configuration.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg.Engine
		if e.registry == nil {
			e.registry = systems.NewRegistry(cfg)
		}
	}
}

// New creates an engine for a surface of size b.
func New(b components.Bounds, opts ...Option) (*Engine, error) {
	if err := checkBounds(b); err != nil {
		return nil, err
	}

	e := &Engine{}
	e.state.Bounds = b
	for _, opt := range opts {
		opt(e)
	}

	if e.cfg.TimeStep == 0 {
		cfg := config.Cfg()
		e.cfg = cfg.Engine
		if e.registry == nil {
			e.registry = systems.NewRegistry(cfg)
		}
	}
	if e.state.Rand == nil {
		e.state.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.bgDefault = e.cfg.BackgroundDefault.Color()
	e.bgTrails = e.cfg.BackgroundTrails.Color()

	return e, nil
}

func checkBounds(b components.Bounds) error {
	if !(b.Width > 0) || !(b.Height > 0) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidBounds, b.Width, b.Height)
	}
	return nil
}

// Resize records new surface dimensions. Existing particles are not moved;
// each mode's boundary handling brings strays back.
func (e *Engine) Resize(b components.Bounds) error {
	if err := checkBounds(b); err != nil {
		return err
	}
	if b != e.state.Bounds {
		slog.Debug("resize", "width", b.Width, "height", b.Height)
	}
	e.state.Bounds = b
	return nil
}

// Step advances one frame and paints it onto surface.
func (e *Engine) Step(surface systems.Surface, cfg components.SimConfig, ptr components.Pointer) {
	if surface == nil {
		panic("engine: Step called with nil surface")
	}
	cfg = cfg.Sanitize()

	e.time += e.cfg.TimeStep
	e.frames++

	e.trace(telemetry.PhaseReconcile)
	e.updateInterference(cfg.Mode, ptr)
	e.reconcile(cfg.Mode, cfg.ParticleCount)

	e.trace(telemetry.PhaseClear)
	e.clear(surface, cfg.Mode)

	ctx := e.context(cfg, ptr)
	ctx.Surface = surface
	strategy := e.registry.Strategy(cfg.Mode)

	e.trace(telemetry.PhaseRender)
	strategy.Render(&e.state, &ctx)

	e.trace(telemetry.PhaseUpdate)
	strategy.Update(&e.state, &ctx)
}

// OnPointerUp forwards a pointer release to the strategy for cfg.Mode.
func (e *Engine) OnPointerUp(cfg components.SimConfig, ptr components.Pointer) {
	cfg = cfg.Sanitize()
	strategy := e.registry.Strategy(cfg.Mode)
	r, ok := strategy.(systems.PointerReleaser)
	if !ok {
		return
	}
	slog.Debug("pointer_up", "mode", cfg.Mode.String(), "x", ptr.X, "y", ptr.Y)
	ctx := e.context(cfg, ptr)
	r.OnPointerUp(&e.state, &ctx)
}

func (e *Engine) context(cfg components.SimConfig, ptr components.Pointer) systems.Context {
	return systems.Context{
		Bounds:       e.state.Bounds,
		Time:         e.time,
		Config:       cfg,
		Pointer:      ptr,
		PointerSpeed: ptr.Speed(),
	}
}

func (e *Engine) trace(phase string) {
	if e.tracer != nil {
		e.tracer.StartPhase(phase)
	}
}

func (e *Engine) updateInterference(mode components.Mode, ptr components.Pointer) {
	if mode != components.ModeNeural {
		e.state.Interference = 0
		return
	}
	if ptr.Down {
		e.state.Interference = min(e.state.Interference+e.cfg.InterferenceIncrease, e.cfg.InterferenceMax)
	} else {
		e.state.Interference = max(e.state.Interference-e.cfg.InterferenceDecay, 0)
	}
}

// TargetCount applies the per-mode population cap to a requested count.
func (e *Engine) TargetCount(mode components.Mode, requested int) int {
	switch mode {
	case components.ModeNeural:
		return min(requested, e.cfg.NeuralMaxParticles)
	case components.ModeOptimization:
		return min(requested, e.cfg.OptimizationMaxParticles)
	}
	return requested
}

// reconcile rebuilds the population on a mode transition and otherwise
// grows it by at most MaxAddPerFrame or truncates it to the target.
func (e *Engine) reconcile(mode components.Mode, requested int) {
	target := e.TargetCount(mode, requested)
	s := &e.state

	if !e.started || mode != e.lastMode {
		if e.started {
			slog.Debug("mode_switch", "from", e.lastMode.String(), "to", mode.String(), "particles", target)
		}
		s.Particles = make([]components.Particle, 0, target)
		for i := 0; i < target; i++ {
			s.Particles = append(s.Particles, components.NewParticle(s.Rand, mode, i, target, s.Bounds))
		}
		s.LiquidPhase = false
		s.Interference = 0
		e.registry.Strategy(mode).Init(s)
		e.lastMode = mode
		e.started = true
		return
	}

	n := len(s.Particles)
	switch {
	case n < target:
		add := min(e.cfg.MaxAddPerFrame, target-n)
		for i := 0; i < add; i++ {
			s.Particles = append(s.Particles, components.NewParticle(s.Rand, mode, n+i, target, s.Bounds))
		}
	case n > target:
		clear(s.Particles[target:])
		s.Particles = s.Particles[:target]
	}
}

func (e *Engine) clear(surface systems.Surface, mode components.Mode) {
	switch mode {
	case components.ModeNeural:
		surface.Clear(e.state.Bounds)
	case components.ModeOptimization:
		surface.FillRect(0, 0, e.state.Bounds.Width, e.state.Bounds.Height, e.bgTrails)
	default:
		surface.FillRect(0, 0, e.state.Bounds.Width, e.state.Bounds.Height, e.bgDefault)
	}
}

// Bounds returns the current surface size.
func (e *Engine) Bounds() components.Bounds { return e.state.Bounds }

// Particles returns the live population. Callers must not modify it.
func (e *Engine) Particles() []components.Particle { return e.state.Particles }

// Len returns the population size.
func (e *Engine) Len() int { return len(e.state.Particles) }

// Interference returns the neural interference level.
func (e *Engine) Interference() float64 { return e.state.Interference }

// LiquidPhase reports whether phase mode is in its liquid regime.
func (e *Engine) LiquidPhase() bool { return e.state.LiquidPhase }

// Time returns the simulation clock.
func (e *Engine) Time() float64 { return e.time }

// Frames returns the number of frames stepped.
func (e *Engine) Frames() int64 { return e.frames }

// Events returns the strategy event tallies.
func (e *Engine) Events() systems.EventCounters { return e.state.Events }

// Mode returns the most recently stepped mode. ok is false before the first Step.
func (e *Engine) Mode() (mode components.Mode, ok bool) {
	return e.lastMode, e.started
}

// Registry returns the strategy registry.
func (e *Engine) Registry() *systems.Registry { return e.registry }
