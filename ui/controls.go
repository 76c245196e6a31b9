package ui

import (
	"fmt"
	"math"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
	"github.com/pthm-cable/particlelab/systems"
)

// Toolbar and panel geometry.
const (
	toolbarButtonWidth  = 110
	toolbarButtonHeight = 30
	toolbarGap          = 6
	toolbarTop          = 16
	configButtonWidth   = 90
)

// SnapCount rounds a slider value to the nearest step and clamps it to [lo, hi].
func SnapCount(v float32, step, lo, hi int) int {
	if step <= 0 {
		step = 1
	}
	n := int(math.Round(float64(v)/float64(step))) * step
	return min(max(n, lo), hi)
}

// SnapFactor rounds a slider value to the nearest step inside [0, 1].
func SnapFactor(v float32, step float64) float64 {
	if step <= 0 {
		return min(max(float64(v), 0), 1)
	}
	g := math.Round(float64(v)/step) * step
	return min(max(g, 0), 1)
}

// ControlsPanel renders the mode toolbar and the collapsible Config panel.
type ControlsPanel struct {
	renderer *Renderer
	limits   config.PlaygroundConfig
	width    int32
	visible  bool

	// Screen regions consumed by widgets during the last Draw.
	hitboxes []rl.Rectangle
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(limits config.PlaygroundConfig, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		limits:   limits,
		width:    width,
		visible:  false,
	}
}

// SetVisible shows or hides the Config panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the Config panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches Config panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Hit reports whether (x, y) lies over a widget drawn in the last frame.
// Presses there belong to the UI, not the simulation.
func (c *ControlsPanel) Hit(x, y float32) bool {
	pt := rl.Vector2{X: x, Y: y}
	for _, r := range c.hitboxes {
		if rl.CheckCollisionPointRec(pt, r) {
			return true
		}
	}
	return false
}

// Draw renders the toolbar and, when open, the Config panel. It returns the
// configuration after any widget interaction.
func (c *ControlsPanel) Draw(screenWidth int32, cfg components.SimConfig, reg *systems.Registry, overlays *OverlayRegistry) components.SimConfig {
	c.hitboxes = c.hitboxes[:0]

	cfg = c.drawToolbar(screenWidth, cfg, reg)

	cfgBtn := rl.Rectangle{
		X:      float32(screenWidth - configButtonWidth - 16),
		Y:      toolbarTop,
		Width:  configButtonWidth,
		Height: toolbarButtonHeight,
	}
	c.hitboxes = append(c.hitboxes, cfgBtn)
	label := "Config"
	if c.visible {
		label = "Config x"
	}
	if gui.Button(cfgBtn, label) {
		c.Toggle()
	}

	if c.visible {
		cfg = c.drawConfig(screenWidth, int32(cfgBtn.Y+cfgBtn.Height)+8, cfg, overlays)
	}
	return cfg
}

func (c *ControlsPanel) drawToolbar(screenWidth int32, cfg components.SimConfig, reg *systems.Registry) components.SimConfig {
	infos := reg.All()
	total := int32(len(infos))*(toolbarButtonWidth+toolbarGap) - toolbarGap
	x := float32((screenWidth - total) / 2)

	for _, info := range infos {
		bounds := rl.Rectangle{X: x, Y: toolbarTop, Width: toolbarButtonWidth, Height: toolbarButtonHeight}
		c.hitboxes = append(c.hitboxes, bounds)

		label := info.Label
		active := info.Mode == cfg.Mode
		if active {
			label = strings.ToUpper(label)
		}
		if gui.Button(bounds, label) {
			cfg.Mode = info.Mode
		}
		if active {
			rl.DrawRectangle(int32(bounds.X), int32(bounds.Y+bounds.Height)+2, int32(bounds.Width), 2, c.renderer.Theme.Accent)
		}
		x += toolbarButtonWidth + toolbarGap
	}
	return cfg
}

func (c *ControlsPanel) drawConfig(screenWidth, top int32, cfg components.SimConfig, overlays *OverlayRegistry) components.SimConfig {
	r := c.renderer
	th := r.Theme
	lineHeight := th.LineHeight

	overlayRows := int32(len(overlays.All()))
	panelHeight := th.Padding*2 + 2*(lineHeight+40) + lineHeight + overlayRows*lineHeight + 8
	x := screenWidth - c.width - 16
	panel := rl.Rectangle{X: float32(x), Y: float32(top), Width: float32(c.width), Height: float32(panelHeight)}
	c.hitboxes = append(c.hitboxes, panel)
	r.DrawPanel(x, top, c.width, panelHeight)

	px := float32(x + th.Padding)
	py := float32(top + th.Padding)
	inner := float32(c.width - th.Padding*2)

	// Count
	rl.DrawText(fmt.Sprintf("Count: %d", cfg.ParticleCount), int32(px), int32(py), th.FontSize, th.ValueColor)
	py += float32(lineHeight)
	if gui.Button(rl.Rectangle{X: px, Y: py, Width: 24, Height: 20}, "-") {
		cfg = cfg.StepCount(-c.limits.CountStep, c.limits.MinCount, c.limits.MaxCount)
	}
	newCount := gui.SliderBar(
		rl.Rectangle{X: px + 30, Y: py, Width: inner - 60, Height: 20},
		"", "",
		float32(cfg.ParticleCount), float32(c.limits.MinCount), float32(c.limits.MaxCount),
	)
	if newCount != float32(cfg.ParticleCount) {
		cfg.ParticleCount = SnapCount(newCount, c.limits.CountStep, c.limits.MinCount, c.limits.MaxCount)
	}
	if gui.Button(rl.Rectangle{X: px + inner - 24, Y: py, Width: 24, Height: 20}, "+") {
		cfg = cfg.StepCount(c.limits.CountStep, c.limits.MinCount, c.limits.MaxCount)
	}
	py += 40

	// Factor
	rl.DrawText(fmt.Sprintf("Factor: %.1f", cfg.GravityStrength), int32(px), int32(py), th.FontSize, th.ValueColor)
	py += float32(lineHeight)
	newFactor := gui.SliderBar(
		rl.Rectangle{X: px + 30, Y: py, Width: inner - 60, Height: 20},
		"0", "1",
		float32(cfg.GravityStrength), 0, 1,
	)
	if newFactor != float32(cfg.GravityStrength) {
		cfg.GravityStrength = SnapFactor(newFactor, c.limits.GravityStep)
	}
	py += 40

	// Overlays
	rl.DrawText("Overlays", int32(px), int32(py), th.HeaderFontSize, th.SectionHeader)
	py += float32(lineHeight)
	for _, desc := range overlays.All() {
		c.drawToggle(int32(px), int32(py), desc, overlays.IsEnabled(desc.ID), desc.AppliesTo(cfg.Mode), int32(inner))
		py += float32(lineHeight)
	}

	return cfg
}

// drawToggle draws a single overlay toggle line. Overlays that do not draw in
// the current mode are dimmed.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled, applies bool, width int32) {
	th := c.renderer.Theme

	statusColor := th.Muted
	if enabled {
		statusColor = th.BarFill
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := th.LabelColor
	switch {
	case !applies:
		nameColor = th.Muted
	case enabled:
		nameColor = th.ValueColor
	}
	rl.DrawText(desc.Name, x+14, y, th.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, th.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, th.FontSize, th.Muted)
	}
}
