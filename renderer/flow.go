package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/systems"
)

// FlowOverlay draws the optimization flow field as a grid of short strokes.
type FlowOverlay struct {
	spacing float32
	length  float32
	color   rl.Color
}

// NewFlowOverlay creates a flow overlay with a grid cell of spacing pixels.
func NewFlowOverlay(spacing float32) *FlowOverlay {
	if spacing < 4 {
		spacing = 4
	}
	return &FlowOverlay{
		spacing: spacing,
		length:  spacing * 0.45,
		color:   rl.Color{R: 220, G: 38, B: 38, A: 90},
	}
}

// Draw renders the field sampled at time t over bounds b.
func (f *FlowOverlay) Draw(b components.Bounds, t float64) {
	half := f.spacing / 2
	for y := half; y < float32(b.Height); y += f.spacing {
		for x := half; x < float32(b.Width); x += f.spacing {
			fx, fy := systems.FlowVector(float64(x), float64(y), t)
			tip := rl.Vector2{X: x + float32(fx)*f.length, Y: y + float32(fy)*f.length}
			rl.DrawLineV(rl.Vector2{X: x, Y: y}, tip, f.color)
			rl.DrawCircleV(tip, 1.2, f.color)
		}
	}
}

// OriginOverlay draws each particle's rest position and its offset from it.
type OriginOverlay struct {
	dot  rl.Color
	line rl.Color
}

// NewOriginOverlay creates an origin overlay.
func NewOriginOverlay() *OriginOverlay {
	return &OriginOverlay{
		dot:  rl.Color{R: 15, G: 118, B: 110, A: 160},
		line: rl.Color{R: 88, G: 28, B: 135, A: 70},
	}
}

// Draw renders origins for the population.
func (o *OriginOverlay) Draw(parts []components.Particle) {
	for i := range parts {
		p := &parts[i]
		origin := rl.Vector2{X: float32(p.OriginX), Y: float32(p.OriginY)}
		rl.DrawLineV(origin, rl.Vector2{X: float32(p.X), Y: float32(p.Y)}, o.line)
		rl.DrawCircleLinesV(origin, 1.5, o.dot)
	}
}
