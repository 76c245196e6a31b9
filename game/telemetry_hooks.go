package game

import (
	"log/slog"

	"github.com/pthm-cable/particlelab/telemetry"
)

// flushTelemetry closes the stats window when it is full.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.sample())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats
	g.report.Add(stats)
	bookmarks := g.bookmarks.Check(stats)

	// Log stats if enabled (console output)
	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
		for _, b := range bookmarks {
			b.LogBookmark()
		}
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		for _, b := range bookmarks {
			if err := g.outputManager.WriteBookmark(b); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sample reads the engine for the collector. Mode and count come from the
// last stepped frame; the UI may already have changed g.sim for the next one.
func (g *Game) sample() telemetry.Sample {
	e := g.engine
	mode, ok := e.Mode()
	if !ok {
		mode = g.stepSim.Mode
	}
	return telemetry.Sample{
		Frame:        g.tick,
		SimTime:      e.Time(),
		Mode:         mode,
		Requested:    e.TargetCount(mode, g.stepSim.ParticleCount),
		Bounds:       e.Bounds(),
		Particles:    e.Particles(),
		Interference: e.Interference(),
		Liquid:       e.LiquidPhase(),
		Events:       e.Events(),
	}
}
