package telemetry

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	reportTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	reportPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	reportLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(20)

	reportValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// Report keeps the most recent windows of a run and renders an end-of-run
// summary with plots.
type Report struct {
	history []WindowStats
	limit   int
	total   int
}

// NewReport creates a report that keeps the last limit windows.
func NewReport(limit int) *Report {
	if limit < 2 {
		limit = 2
	}
	return &Report{limit: limit}
}

// Add appends a window, dropping the oldest beyond the limit.
func (r *Report) Add(s WindowStats) {
	r.history = append(r.history, s)
	if len(r.history) > r.limit {
		r.history = r.history[len(r.history)-r.limit:]
	}
	r.total++
}

// Len returns the number of windows held.
func (r *Report) Len() int { return len(r.history) }

// Series extracts one column of the held windows.
func (r *Report) Series(f func(WindowStats) float64) []float64 {
	out := make([]float64, len(r.history))
	for i, s := range r.history {
		out[i] = f(s)
	}
	return out
}

type reportRow struct {
	label string
	value string
}

func (r *Report) rows() []reportRow {
	last := r.history[len(r.history)-1]
	var respawns, releases, toggles int
	for _, s := range r.history {
		respawns += s.Respawns
		releases += s.Releases
		toggles += s.PhaseToggles
	}
	return []reportRow{
		{"windows", fmt.Sprintf("%d (%d shown)", r.total, len(r.history))},
		{"last frame", fmt.Sprintf("%d", last.WindowEnd)},
		{"sim time", fmt.Sprintf("%.2f", last.SimTime)},
		{"mode", last.Mode},
		{"particles", fmt.Sprintf("%d / %d", last.Particles, last.Requested)},
		{"speed p50 / p90", fmt.Sprintf("%.3f / %.3f", last.SpeedP50, last.SpeedP90)},
		{"releases", fmt.Sprintf("%d", releases)},
		{"respawns", fmt.Sprintf("%d", respawns)},
		{"phase toggles", fmt.Sprintf("%d", toggles)},
	}
}

func (r *Report) plots() []string {
	if len(r.history) < 2 {
		return nil
	}
	plot := func(data []float64, caption string) string {
		return asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(72),
			asciigraph.Caption(caption),
		)
	}
	return []string{
		plot(r.Series(func(s WindowStats) float64 { return s.SpeedMean }), "mean particle speed"),
		plot(r.Series(func(s WindowStats) float64 { return float64(s.Particles) }), "particles"),
		plot(r.Series(func(s WindowStats) float64 { return s.PeakInterference }), "peak interference"),
	}
}

// Render returns the styled report for a terminal.
func (r *Report) Render() string {
	if len(r.history) == 0 {
		return reportTitle.Render("particlelab: no telemetry windows recorded")
	}
	var lines []string
	for _, row := range r.rows() {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			reportLabel.Render(row.label), reportValue.Render(row.value)))
	}
	summary := reportPanel.Render(strings.Join(lines, "\n"))

	parts := []string{reportTitle.Render("particlelab run report"), summary}
	parts = append(parts, r.plots()...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Plain returns the report without terminal styling.
func (r *Report) Plain() string {
	if len(r.history) == 0 {
		return "particlelab: no telemetry windows recorded\n"
	}
	var b strings.Builder
	b.WriteString("particlelab run report\n")
	for _, row := range r.rows() {
		fmt.Fprintf(&b, "%-20s%s\n", row.label, row.value)
	}
	for _, p := range r.plots() {
		b.WriteString("\n")
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}
