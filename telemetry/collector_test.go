package telemetry

import (
	"testing"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/systems"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(4)
	down := components.Pointer{Down: true}
	up := components.Pointer{}

	c.RecordFrame(components.ModeNeural, down, 1, 10)
	c.RecordFrame(components.ModeNeural, down, 2, 20)
	c.RecordFrame(components.ModeNeural, up, 0, 30)
	c.RecordRelease()

	if c.ShouldFlush(3) {
		t.Error("should not flush before the window is full")
	}
	if !c.ShouldFlush(4) {
		t.Error("should flush once the window is full")
	}
	c.RecordFrame(components.ModePhase, up, 0, 40)

	stats := c.Flush(Sample{
		Frame:     4,
		Mode:      components.ModePhase,
		Requested: 10,
		Bounds:    components.Bounds{Width: 10, Height: 10},
		Particles: []components.Particle{{X: 1, Y: 1, VX: 1}},
		Events:    systems.EventCounters{PhaseToggles: 3},
	})

	if stats.Mode != "phase" || stats.Particles != 1 || stats.Requested != 10 {
		t.Errorf("unexpected population fields: %+v", stats)
	}
	if stats.PointerDownFrames != 2 || stats.Releases != 1 || stats.ModeSwitches != 1 {
		t.Errorf("unexpected event counts: %+v", stats)
	}
	if stats.PeakInterference != 2 {
		t.Errorf("peak interference = %v, want 2", stats.PeakInterference)
	}
	if stats.DrawCalls != 25 {
		t.Errorf("draw calls = %v, want 25 per frame", stats.DrawCalls)
	}
	if stats.PhaseToggles != 3 {
		t.Errorf("phase toggles = %d, want 3", stats.PhaseToggles)
	}

	// Counters restart; event deltas are relative to the last flush.
	c.RecordFrame(components.ModePhase, up, 0, 0)
	next := c.Flush(Sample{
		Frame:  8,
		Mode:   components.ModePhase,
		Events: systems.EventCounters{PhaseToggles: 4},
	})
	if next.WindowStart != 4 || next.PhaseToggles != 1 || next.ModeSwitches != 0 || next.Releases != 0 {
		t.Errorf("second window not reset: %+v", next)
	}
}

func TestNewCollectorMinimumWindow(t *testing.T) {
	if got := NewCollector(0).WindowFrames(); got != 1 {
		t.Errorf("WindowFrames = %d, want 1", got)
	}
}
