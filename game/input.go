package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlelab/components"
)

// modeKeys maps number keys to modes in toolbar order.
var modeKeys = map[int32]components.Mode{
	rl.KeyOne:   components.ModeEntropy,
	rl.KeyTwo:   components.ModeNeural,
	rl.KeyThree: components.ModePhase,
	rl.KeyFour:  components.ModeOptimization,
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	for key, mode := range modeKeys {
		if rl.IsKeyPressed(key) {
			g.sim.Mode = mode
		}
	}

	pg := g.cfg.Playground
	if rl.IsKeyPressed(rl.KeyUp) {
		g.sim = g.sim.StepCount(pg.CountStep, pg.MinCount, pg.MaxCount)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		g.sim = g.sim.StepCount(-pg.CountStep, pg.MinCount, pg.MaxCount)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		g.sim = g.sim.StepGravity(pg.GravityStep)
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		g.sim = g.sim.StepGravity(-pg.GravityStep)
	}

	if key := rl.GetKeyPressed(); key != 0 {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay", "id", string(id), "enabled", on)
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.canvas.Resize(int32(w), int32(h))
	if err := g.engine.Resize(g.canvas.Bounds()); err != nil {
		// Minimised windows report a zero size; keep the old bounds.
		slog.Warn("ignoring resize", "error", err)
	}
}

// capturePointer writes mouse and touch state into the shared pointer record.
// The first touch point behaves like the mouse.
func (g *Game) capturePointer() {
	touching := rl.GetTouchPointCount() > 0

	var pos rl.Vector2
	if touching {
		pos = rl.GetTouchPosition(0)
	} else {
		pos = rl.GetMousePosition()
	}
	x, y := float64(pos.X), float64(pos.Y)
	if x != g.pointer.LastX || y != g.pointer.LastY {
		g.pointer.Move(x, y)
	}

	pressed := rl.IsMouseButtonPressed(rl.MouseButtonLeft) || (touching && !g.pointer.Down && !g.pressOnScene)
	if pressed && !g.controls.Hit(pos.X, pos.Y) {
		g.pressOnScene = true
		g.pointer.Press()
	}

	released := rl.IsMouseButtonReleased(rl.MouseButtonLeft) || (!touching && g.pointer.Down && !rl.IsMouseButtonDown(rl.MouseButtonLeft))
	if released && g.pressOnScene {
		g.pressOnScene = false
		g.release()
	}
}
