package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/particlelab/components"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStart int64   `csv:"-"`
	WindowEnd   int64   `csv:"window_end"`
	SimTime     float64 `csv:"sim_time"`
	Mode        string  `csv:"mode"`

	// Population at window end
	Particles   int `csv:"particles"`
	Requested   int `csv:"requested"`
	OutOfBounds int `csv:"out_of_bounds"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Mean distance from rest position; meaningful for lattice modes.
	OriginDisplacement float64 `csv:"origin_disp"`

	Interference     float64 `csv:"interference"`
	PeakInterference float64 `csv:"peak_interference"`
	Liquid           bool    `csv:"liquid"`

	// Events during window
	PointerDownFrames int `csv:"pointer_down_frames"`
	Releases          int `csv:"releases"`
	ModeSwitches      int `csv:"mode_switches"`
	Respawns          int `csv:"respawns"`
	Explosions        int `csv:"explosions"`
	Scattered         int `csv:"scattered"`
	PhaseToggles      int `csv:"phase_toggles"`

	// Mean draw calls per frame
	DrawCalls float64 `csv:"draw_calls"`
}

// ComputeSpeedStats calculates mean, std, and quantiles from speed values.
func ComputeSpeedStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	// Quantile needs sorted input
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// PopulationSample is the per-particle data the stats need.
type PopulationSample struct {
	Speeds       []float64
	Displacement float64 // mean distance from origin
	OutOfBounds  int
}

// SamplePopulation measures particle speeds and origin displacement.
func SamplePopulation(parts []components.Particle, b components.Bounds) PopulationSample {
	s := PopulationSample{Speeds: make([]float64, len(parts))}
	if len(parts) == 0 {
		return s
	}
	disp := make([]float64, len(parts))
	for i, p := range parts {
		s.Speeds[i] = math.Hypot(p.VX, p.VY)
		disp[i] = math.Hypot(p.X-p.OriginX, p.Y-p.OriginY)
		if !b.Contains(p.X, p.Y) {
			s.OutOfBounds++
		}
	}
	s.Displacement = stat.Mean(disp, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStart),
		slog.Int64("window_end", s.WindowEnd),
		slog.Float64("sim_time", s.SimTime),
		slog.String("mode", s.Mode),
		slog.Int("particles", s.Particles),
		slog.Int("requested", s.Requested),
		slog.Int("out_of_bounds", s.OutOfBounds),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("origin_disp", s.OriginDisplacement),
		slog.Float64("interference", s.Interference),
		slog.Float64("peak_interference", s.PeakInterference),
		slog.Bool("liquid", s.Liquid),
		slog.Int("pointer_down_frames", s.PointerDownFrames),
		slog.Int("releases", s.Releases),
		slog.Int("mode_switches", s.ModeSwitches),
		slog.Int("respawns", s.Respawns),
		slog.Int("explosions", s.Explosions),
		slog.Int("scattered", s.Scattered),
		slog.Int("phase_toggles", s.PhaseToggles),
		slog.Float64("draw_calls", s.DrawCalls),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
