package telemetry

import (
	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/systems"
)

// Sample is the engine state read when a window is flushed.
type Sample struct {
	Frame        int64
	SimTime      float64
	Mode         components.Mode
	Requested    int
	Bounds       components.Bounds
	Particles    []components.Particle
	Interference float64
	Liquid       bool
	Events       systems.EventCounters
}

// Collector accumulates per-frame observations within windows of frames
// and produces WindowStats.
type Collector struct {
	windowFrames int64

	// Current window tracking
	windowStart int64
	lastEvents  systems.EventCounters
	lastMode    components.Mode
	hasMode     bool

	pointerDownFrames int
	releases          int
	modeSwitches      int
	peakInterference  float64
	drawCalls         int
	frames            int
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: int64(windowFrames)}
}

// RecordFrame records one stepped frame.
func (c *Collector) RecordFrame(mode components.Mode, ptr components.Pointer, interference float64, drawCalls int) {
	if c.hasMode && mode != c.lastMode {
		c.modeSwitches++
	}
	c.lastMode = mode
	c.hasMode = true

	if ptr.Down {
		c.pointerDownFrames++
	}
	c.peakInterference = max(c.peakInterference, interference)
	c.drawCalls += drawCalls
	c.frames++
}

// RecordRelease records a pointer release.
func (c *Collector) RecordRelease() {
	c.releases++
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(snap Sample) WindowStats {
	sample := SamplePopulation(snap.Particles, snap.Bounds)
	mean, std, p10, p50, p90 := ComputeSpeedStats(sample.Speeds)

	var drawCalls float64
	if c.frames > 0 {
		drawCalls = float64(c.drawCalls) / float64(c.frames)
	}

	ev := snap.Events
	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   snap.Frame,
		SimTime:     snap.SimTime,
		Mode:        snap.Mode.String(),

		Particles:   len(snap.Particles),
		Requested:   snap.Requested,
		OutOfBounds: sample.OutOfBounds,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,

		OriginDisplacement: sample.Displacement,

		Interference:     snap.Interference,
		PeakInterference: c.peakInterference,
		Liquid:           snap.Liquid,

		PointerDownFrames: c.pointerDownFrames,
		Releases:          c.releases,
		ModeSwitches:      c.modeSwitches,
		Respawns:          ev.Respawns - c.lastEvents.Respawns,
		Explosions:        ev.Explosions - c.lastEvents.Explosions,
		Scattered:         ev.Scattered - c.lastEvents.Scattered,
		PhaseToggles:      ev.PhaseToggles - c.lastEvents.PhaseToggles,

		DrawCalls: drawCalls,
	}

	// Reset for next window
	c.windowStart = snap.Frame
	c.lastEvents = ev
	c.pointerDownFrames = 0
	c.releases = 0
	c.modeSwitches = 0
	c.peakInterference = 0
	c.drawCalls = 0
	c.frames = 0

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}
