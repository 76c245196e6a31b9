package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
)

// Autopilot stands in for a user in headless runs. The pointer orbits the
// surface centre, presses on a fixed schedule and optionally cycles modes.
type Autopilot struct {
	cfg       config.AutopilotConfig
	frame     int64
	pressedAt int64
}

// NewAutopilot creates an autopilot with the given schedule.
func NewAutopilot(cfg config.AutopilotConfig) *Autopilot {
	return &Autopilot{cfg: cfg, pressedAt: -1}
}

// Position returns the orbit point for frame on a surface of size b.
func (a *Autopilot) Position(b components.Bounds, frame int64) (x, y float64) {
	r := a.cfg.OrbitRadius * min(b.Width, b.Height)
	angle := float64(frame) * a.cfg.OrbitSpeed
	return b.Width/2 + r*math.Cos(angle), b.Height/2 + r*math.Sin(angle)
}

// Advance moves the pointer for the next frame and applies any scheduled
// press or mode switch. It reports whether the pointer was released, in
// which case the caller dispatches the release.
func (a *Autopilot) Advance(b components.Bounds, ptr *components.Pointer, sim *components.SimConfig) (released bool) {
	frame := a.frame
	a.frame++

	ptr.Move(a.Position(b, frame))

	if a.cfg.ModeEvery > 0 && frame > 0 && frame%int64(a.cfg.ModeEvery) == 0 {
		sim.Mode = nextMode(sim.Mode)
		slog.Debug("autopilot_mode", "frame", frame, "mode", sim.Mode.String())
	}

	if ptr.Down && frame-a.pressedAt >= int64(a.cfg.HoldFrames) {
		a.pressedAt = -1
		return true
	}

	if a.cfg.PressEvery > 0 && !ptr.Down && frame > 0 && frame%int64(a.cfg.PressEvery) == 0 {
		ptr.Press()
		a.pressedAt = frame
	}
	return false
}

// nextMode cycles through modes in toolbar order.
func nextMode(m components.Mode) components.Mode {
	modes := components.Modes()
	for i, mode := range modes {
		if mode == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}
