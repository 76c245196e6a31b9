package game

import (
	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/systems"
)

// countingSurface forwards to a Surface and counts draw calls for telemetry.
type countingSurface struct {
	systems.Surface
	calls int
}

func (s *countingSurface) Clear(b components.Bounds) {
	s.calls++
	s.Surface.Clear(b)
}

func (s *countingSurface) FillRect(x, y, w, h float64, c components.Color) {
	s.calls++
	s.Surface.FillRect(x, y, w, h, c)
}

func (s *countingSurface) FillCircle(x, y, r float64, c components.Color) {
	s.calls++
	s.Surface.FillCircle(x, y, r, c)
}

func (s *countingSurface) StrokeLine(x1, y1, x2, y2, width float64, c components.Color) {
	s.calls++
	s.Surface.StrokeLine(x1, y1, x2, y2, width, c)
}

func (s *countingSurface) FillText(text string, x, y float64, size int, c components.Color) {
	s.calls++
	s.Surface.FillText(text, x, y, size, c)
}
