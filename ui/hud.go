package ui

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/systems"
	"github.com/pthm-cable/particlelab/telemetry"
)

// Title opacity while the pointer is held, and how long a fade takes.
const (
	PressedTitleAlpha = 0.2
	TitleFadeSeconds  = 0.5
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Mode         components.Mode
	Info         systems.ModeInfo
	Config       components.SimConfig
	MaxCount     int
	Pressed      bool
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// ModeHeader returns the status line naming the active mode.
func ModeHeader(m components.Mode) string {
	return "SYS.MODE: " + strings.ToUpper(m.String())
}

// LoadText returns the requested-count gauge line.
func LoadText(cfg components.SimConfig, maxCount int) string {
	return fmt.Sprintf("COMPUTE_LOAD: %d%%", cfg.ComputeLoad(maxCount))
}

// TitleFader eases the centred title toward dim while the pointer is held.
type TitleFader struct {
	alpha float64
}

// NewTitleFader starts fully visible.
func NewTitleFader() *TitleFader {
	return &TitleFader{alpha: 1}
}

// Update moves alpha toward its target by dt of a TitleFadeSeconds transition.
func (f *TitleFader) Update(pressed bool, dt float64) float64 {
	target := 1.0
	if pressed {
		target = PressedTitleAlpha
	}
	step := (1 - PressedTitleAlpha) * dt / TitleFadeSeconds
	if f.alpha < target {
		f.alpha = min(f.alpha+step, target)
	} else {
		f.alpha = max(f.alpha-step, target)
	}
	return f.alpha
}

// Alpha returns the current title opacity.
func (f *TitleFader) Alpha() float64 {
	return f.alpha
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	fader    *TitleFader
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		fader:    NewTitleFader(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	th := h.renderer.Theme
	alpha := h.fader.Update(data.Pressed, float64(rl.GetFrameTime()))

	// Centred mode title and hint
	title := strings.ToUpper(data.Info.Title)
	tw := rl.MeasureText(title, 40)
	ty := data.ScreenHeight/2 - 40
	rl.DrawText(title, (data.ScreenWidth-tw)/2, ty, 40, rl.Fade(th.Accent, float32(alpha)))
	hw := rl.MeasureText(data.Info.Hint, 14)
	rl.DrawText(data.Info.Hint, (data.ScreenWidth-hw)/2, ty+52, 14, rl.Fade(th.LabelColor, float32(alpha)))

	// Status, bottom left
	x := int32(16)
	y := data.ScreenHeight - 52
	dot := th.Muted
	if data.Pressed {
		dot = th.Hot
	}
	rl.DrawCircle(x+4, y+6, 4, dot)
	rl.DrawText(ModeHeader(data.Mode), x+14, y, th.FontSize, th.ValueColor)
	rl.DrawText(LoadText(data.Config, data.MaxCount), x+14, y+16, th.FontSize, th.LabelColor)

	status := fmt.Sprintf("FPS: %d", data.FPS)
	if data.Paused {
		status += "  PAUSED"
	}
	sw := rl.MeasureText(status, th.FontSize)
	rl.DrawText(status, data.ScreenWidth-sw-16, data.ScreenHeight-36, th.FontSize, th.LabelColor)
}

// DrawControls renders the key legend along the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, overlays *OverlayRegistry) {
	th := h.renderer.Theme
	parts := []string{"[1-4] mode", "[up/down] count", "[left/right] factor", "[space] pause", "[F11] fullscreen"}
	for _, desc := range overlays.All() {
		parts = append(parts, fmt.Sprintf("[%s] %s", desc.KeyLabel, strings.ToLower(desc.Name)))
	}
	legend := strings.Join(parts, "  ")
	w := rl.MeasureText(legend, th.FontSize)
	rl.DrawText(legend, (screenWidth-w)/2, screenHeight-18, th.FontSize, th.Muted)
}

// PerfPanel renders the per-phase frame timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	th := r.Theme
	width := th.PanelWidth
	height := th.Padding*2 + th.LineHeight*int32(len(telemetry.Phases)+3) + 4
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + th.Padding
	y := p.y + th.Padding

	rl.DrawText("Frame Timing", x, y, th.HeaderFontSize+2, th.Accent)
	y += th.LineHeight + 4

	rl.DrawText(fmt.Sprintf("Tick: %s  (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, th.FontSize, th.ValueColor)
	y += th.LineHeight
	rl.DrawText(fmt.Sprintf("Load: %.0f p  %.0f draws  %.0f ns/p", stats.AvgParticles, stats.AvgDrawCalls, stats.NsPerParticle), x, y, th.FontSize, th.LabelColor)
	y += th.LineHeight

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := th.LabelColor
		if pct > 50 {
			color = th.Hot
		} else if pct > 25 {
			color = th.Warn
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, th.FontSize, color,
		)
		y += th.LineHeight
	}
}

// StatsPanel renders the latest telemetry window through a panel descriptor.
type StatsPanel struct {
	renderer *Renderer
	panel    PanelDescriptor
	x, y     int32
}

// NewStatsPanel creates the window stats panel.
func NewStatsPanel(x, y int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		panel:    WindowStatsPanel(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the panel for stats.
func (s *StatsPanel) Draw(stats telemetry.WindowStats) {
	s.renderer.DrawPanelDescriptor(s.x, s.y, s.panel, stats)
}

func windowStats(data any) telemetry.WindowStats {
	ws, _ := data.(telemetry.WindowStats)
	return ws
}

// WindowStatsPanel describes the telemetry readout.
func WindowStatsPanel() PanelDescriptor {
	return PanelDescriptor{
		ID:    "window_stats",
		Title: "Window Stats",
		Sections: []SectionDescriptor{
			{
				ID:    "population",
				Title: "Population",
				Fields: []FieldDescriptor{
					{ID: "mode", Label: "Mode", Widget: WidgetText, TextGetter: func(d any) string { return windowStats(d).Mode }},
					{ID: "particles", Label: "Particles", Widget: WidgetText, TextGetter: func(d any) string {
						ws := windowStats(d)
						return fmt.Sprintf("%d / %d", ws.Particles, ws.Requested)
					}},
					{ID: "out_of_bounds", Label: "Out of bounds", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(windowStats(d).OutOfBounds) }},
					{ID: "draw_calls", Label: "Draw calls", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(windowStats(d).DrawCalls) }},
				},
			},
			{
				ID:    "motion",
				Title: "Motion",
				Fields: []FieldDescriptor{
					{ID: "speed_mean", Label: "Speed mean", Widget: WidgetText, Getter: func(d any) float32 { return float32(windowStats(d).SpeedMean) }},
					{ID: "speed_p90", Label: "Speed p90", Widget: WidgetText, Getter: func(d any) float32 { return float32(windowStats(d).SpeedP90) }},
					{ID: "origin_disp", Label: "Displacement", Widget: WidgetText, Format: "%.1f", Getter: func(d any) float32 { return float32(windowStats(d).OriginDisplacement) }},
				},
			},
			{
				ID:      "neural",
				Title:   "Signal",
				Visible: func(d any) bool { return windowStats(d).Mode == components.ModeNeural.String() },
				Fields: []FieldDescriptor{
					{ID: "interference", Label: "Interference", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 50}, Getter: func(d any) float32 { return float32(windowStats(d).Interference) }},
					{ID: "peak", Label: "Peak", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 50}, Getter: func(d any) float32 { return float32(windowStats(d).PeakInterference) }},
				},
			},
			{
				ID:      "phase",
				Title:   "Regime",
				Visible: func(d any) bool { return windowStats(d).Mode == components.ModePhase.String() },
				Fields: []FieldDescriptor{
					{ID: "liquid", Label: "State", Widget: WidgetText, TextGetter: func(d any) string {
						if windowStats(d).Liquid {
							return "liquid"
						}
						return "solid"
					}},
				},
			},
			{
				ID:    "events",
				Title: "Events",
				Fields: []FieldDescriptor{
					{ID: "releases", Label: "Releases", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(windowStats(d).Releases) }},
					{ID: "explosions", Label: "Explosions", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(windowStats(d).Explosions) }},
					{ID: "respawns", Label: "Respawns", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(windowStats(d).Respawns) }},
					{ID: "phase_toggles", Label: "Phase toggles", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(windowStats(d).PhaseToggles) }},
				},
			},
		},
	}
}
