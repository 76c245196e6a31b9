package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSignalSaturation BookmarkType = "signal_saturation"
	BookmarkMassExplosion    BookmarkType = "mass_explosion"
	BookmarkMelt             BookmarkType = "melt"
	BookmarkFreeze           BookmarkType = "freeze"
	BookmarkSpeedSpike       BookmarkType = "speed_spike"
	BookmarkSettled          BookmarkType = "settled"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Frame       int64        `csv:"frame"`
	Mode        string       `csv:"mode"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"mode", b.Mode,
		"description", b.Description,
	)
}

// Detector thresholds.
const (
	explosionShare   = 0.5  // share of the population scattered in one window
	spikeFactor      = 2.0  // mean speed relative to the rolling average
	spikeMinSpeed    = 1.0  // ignore spikes in an almost still population
	settledSpeed     = 0.05 // p90 speed below which the population is at rest
	settledWindows   = 5
	minSpikeHistory  = 3
	minHistoryWindow = 5
)

// BookmarkDetector detects interesting moments in the playground. History is
// kept per mode: a mode switch starts it over.
type BookmarkDetector struct {
	interferenceMax float64

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	mode                string
	saturated           bool // peak interference was at the maximum last window
	settledWindowsCount int  // consecutive windows at rest with no pointer press
}

// NewBookmarkDetector creates a detector with the given history size.
// interferenceMax is the level that counts as signal saturation.
func NewBookmarkDetector(historySize int, interferenceMax float64) *BookmarkDetector {
	if historySize < minHistoryWindow {
		historySize = minHistoryWindow
	}
	return &BookmarkDetector{
		interferenceMax: interferenceMax,
		history:         make([]WindowStats, historySize),
		historySize:     historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	if stats.Mode != bd.mode {
		bd.reset(stats.Mode)
	}

	var bookmarks []Bookmark

	if b := bd.checkSignalSaturation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if b := bd.checkMassExplosion(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if b := bd.checkPhaseChange(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if b := bd.checkSpeedSpike(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) reset(mode string) {
	bd.mode = mode
	bd.historyIdx = 0
	bd.historyFull = false
	bd.saturated = false
	bd.settledWindowsCount = 0
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// last returns the previous window in the current mode.
func (bd *BookmarkDetector) last() (WindowStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return WindowStats{}, false
	}
	i := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[i], true
}

func (bd *BookmarkDetector) newBookmark(t BookmarkType, stats WindowStats, format string, args ...any) *Bookmark {
	return &Bookmark{
		Type:        t,
		Frame:       stats.WindowEnd,
		Mode:        stats.Mode,
		Description: fmt.Sprintf(format, args...),
	}
}

func (bd *BookmarkDetector) checkSignalSaturation(stats WindowStats) *Bookmark {
	if bd.interferenceMax <= 0 {
		return nil
	}
	saturated := stats.PeakInterference >= bd.interferenceMax
	wasSaturated := bd.saturated
	bd.saturated = saturated

	// Rising edge only
	if saturated && !wasSaturated {
		return bd.newBookmark(BookmarkSignalSaturation, stats,
			"Interference reached %.0f after %d held frames", stats.PeakInterference, stats.PointerDownFrames)
	}
	return nil
}

func (bd *BookmarkDetector) checkMassExplosion(stats WindowStats) *Bookmark {
	if stats.Particles == 0 || stats.Scattered == 0 {
		return nil
	}
	share := float64(stats.Scattered) / float64(stats.Particles)
	if share >= explosionShare {
		return bd.newBookmark(BookmarkMassExplosion, stats,
			"%d explosion(s) scattered %.0f%% of %d particles", stats.Explosions, share*100, stats.Particles)
	}
	return nil
}

func (bd *BookmarkDetector) checkPhaseChange(stats WindowStats) *Bookmark {
	prev, ok := bd.last()
	if !ok || prev.Liquid == stats.Liquid {
		return nil
	}
	if stats.Liquid {
		return bd.newBookmark(BookmarkMelt, stats, "Lattice melted (%d toggles in window)", stats.PhaseToggles)
	}
	return bd.newBookmark(BookmarkFreeze, stats, "Liquid froze back into the lattice (%d toggles in window)", stats.PhaseToggles)
}

func (bd *BookmarkDetector) checkSpeedSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < minSpikeHistory {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.SpeedMean
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.SpeedMean > avg*spikeFactor && stats.SpeedMean > spikeMinSpeed {
		return bd.newBookmark(BookmarkSpeedSpike, stats,
			"Mean speed %.2f is %.1fx average (%.2f)", stats.SpeedMean, stats.SpeedMean/avg, avg)
	}
	return nil
}

func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.PointerDownFrames > 0 || stats.Particles == 0 || stats.SpeedP90 >= settledSpeed {
		bd.settledWindowsCount = 0
		return nil
	}

	bd.settledWindowsCount++
	if bd.settledWindowsCount == settledWindows { // trigger exactly once
		return bd.newBookmark(BookmarkSettled, stats,
			"Population of %d at rest for %d windows (p90 speed %.3f)", stats.Particles, settledWindows, stats.SpeedP90)
	}
	return nil
}
