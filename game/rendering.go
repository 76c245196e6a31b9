package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/telemetry"
	"github.com/pthm-cable/particlelab/ui"
)

// Ivory page colour behind the canvas.
var pageColor = rl.Color{R: 253, G: 252, B: 248, A: 255}

// Draw presents the canvas, overlays and UI, then closes the frame's
// telemetry.
func (g *Game) Draw() {
	if g.stepped {
		g.perfCollector.StartPhase(telemetry.PhasePresent)
	}

	rl.BeginDrawing()
	rl.ClearBackground(pageColor)

	g.canvas.Present()
	g.drawOverlays()
	g.drawUI()

	rl.EndDrawing()
	g.perfCollector.RecordFrame()

	if g.stepped {
		g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
		g.flushTelemetry()
		g.perfCollector.EndTick(g.engine.Len(), g.drawCalls)
		g.stepped = false
	}
}

// drawOverlays draws the enabled debug overlays on top of the canvas.
func (g *Game) drawOverlays() {
	if g.overlays.Active(ui.OverlayFlowField, g.sim.Mode) {
		g.flowOverlay.Draw(g.engine.Bounds(), g.engine.Time())
	}
	if g.overlays.Active(ui.OverlayOrigins, g.sim.Mode) {
		g.originOverlay.Draw(g.engine.Particles())
	}
}

// drawUI draws the HUD, panels and controls. Widget interaction may change
// the control values for the next frame.
func (g *Game) drawUI() {
	mode := g.sim.Mode
	info, _ := g.engine.Registry().Info(mode)

	g.hud.Draw(ui.HUDData{
		Mode:         mode,
		Info:         info,
		Config:       g.sim,
		MaxCount:     g.cfg.Playground.MaxCount,
		Pressed:      g.pointer.Down,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayStats) {
		g.statsPanel.Draw(g.lastStats)
	}
	if g.overlays.IsEnabled(ui.OverlayHelp) {
		g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), g.overlays)
	}

	next := g.controls.Draw(int32(g.screenWidth), g.sim, g.engine.Registry(), g.overlays)
	g.applyControls(next)
}

// applyControls adopts control values changed through the UI.
func (g *Game) applyControls(next components.SimConfig) {
	if next == g.sim {
		return
	}
	g.sim = next.Sanitize()
}
