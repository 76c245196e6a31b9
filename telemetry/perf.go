package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for a playground frame. The first four are reported by the
// engine, the rest by the host.
const (
	PhaseReconcile = "reconcile"
	PhaseClear     = "clear"
	PhaseRender    = "render"
	PhaseUpdate    = "update"
	PhasePresent   = "present"
	PhaseTelemetry = "telemetry"
)

// Phases lists every frame phase in execution order.
var Phases = []string{
	PhaseReconcile, PhaseClear, PhaseRender, PhaseUpdate, PhasePresent, PhaseTelemetry,
}

const numPhases = 6

func phaseIndex(phase string) int {
	for i, p := range Phases {
		if p == phase {
			return i
		}
	}
	return -1
}

// frameSample holds timing and load for one frame.
type frameSample struct {
	tick      time.Duration
	phases    [numPhases]time.Duration
	particles int
	drawCalls int
}

// PerfCollector times frames and their phases over a rolling window.
// Phases not listed in Phases count toward the frame time only.
type PerfCollector struct {
	samples []frameSample
	next    int
	filled  int

	current    frameSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into Phases, -1 when untracked

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]frameSample, windowSize),
		phase:   -1,
		now:     time.Now,
	}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = frameSample{}
	p.phase = -1
}

// StartPhase closes the running phase and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseIndex(phase)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick records the frame with the population size and draw calls it ran on.
func (p *PerfCollector) EndTick(particles, drawCalls int) {
	now := p.now()
	p.closePhase(now)
	p.phase = -1

	p.current.tick = now.Sub(p.tickStart)
	p.current.particles = particles
	p.current.drawCalls = drawCalls

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	p.filled = min(p.filled+1, len(p.samples))
}

// RecordFrame records presentation timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Per phase, keyed by phase name
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Load
	AvgParticles  float64
	AvgDrawCalls  float64
	NsPerParticle float64 // average frame time divided by average population
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	var particles, draws int
	for i, fs := range p.samples[:p.filled] {
		total += fs.tick
		if i == 0 || fs.tick < s.MinTickDuration {
			s.MinTickDuration = fs.tick
		}
		s.MaxTickDuration = max(s.MaxTickDuration, fs.tick)
		for j, d := range fs.phases {
			phaseSum[j] += d
		}
		particles += fs.particles
		draws += fs.drawCalls
	}

	n := float64(p.filled)
	s.AvgTickDuration = total / time.Duration(p.filled)
	s.AvgParticles = float64(particles) / n
	s.AvgDrawCalls = float64(draws) / n

	for j, sum := range phaseSum {
		if sum == 0 {
			continue
		}
		avg := sum / time.Duration(p.filled)
		s.PhaseAvg[Phases[j]] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[Phases[j]] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}

	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	if s.AvgParticles > 0 {
		s.NsPerParticle = float64(s.AvgTickDuration) / s.AvgParticles
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
		"particles", int(s.AvgParticles),
		"draw_calls", int(s.AvgDrawCalls),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int64   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	Particles     float64 `csv:"particles"`
	DrawCalls     float64 `csv:"draw_calls"`
	NsPerParticle float64 `csv:"ns_per_particle"`
	ReconcilePct  float64 `csv:"reconcile_pct"`
	ClearPct      float64 `csv:"clear_pct"`
	RenderPct     float64 `csv:"render_pct"`
	UpdatePct     float64 `csv:"update_pct"`
	PresentPct    float64 `csv:"present_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s into a row closing at windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		Particles:     s.AvgParticles,
		DrawCalls:     s.AvgDrawCalls,
		NsPerParticle: s.NsPerParticle,
		ReconcilePct:  s.PhasePct[PhaseReconcile],
		ClearPct:      s.PhasePct[PhaseClear],
		RenderPct:     s.PhasePct[PhaseRender],
		UpdatePct:     s.PhasePct[PhaseUpdate],
		PresentPct:    s.PhasePct[PhasePresent],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
