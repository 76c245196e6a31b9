package systems

import (
	"fmt"
	"math"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
)

var (
	neuralStroke = components.RGBA(88, 28, 135, 1)
	glitchStroke = components.RGBA(220, 38, 38, 1)
	glitchText   = components.RGBA(255, 0, 0, 1)
	plainText    = components.RGBA(0, 0, 0, 1)
)

// Neural is the lattice mode. Nearby nodes are wired together and holding
// the pointer injects interference that scrambles the lattice.
type Neural struct {
	cfg config.NeuralConfig
}

// NewNeural creates the neural strategy.
func NewNeural(cfg config.NeuralConfig) *Neural {
	return &Neural{cfg: cfg}
}

func (n *Neural) Mode() components.Mode { return components.ModeNeural }

func (n *Neural) Init(s *State) {}

// Render draws a connection for every pair closer than the connection
// distance. Lines fade with distance; under interference some glitch red
// and some carry a 4-bit label at their midpoint.
func (n *Neural) Render(s *State, ctx *Context) {
	interference := s.Interference
	baseAlpha := n.cfg.IdleStrokeAlpha
	if interference > 0 {
		baseAlpha = n.cfg.DisturbedStrokeAlpha
	}
	parts := s.Particles

	for i := range parts {
		p := &parts[i]
		for j := i + 1; j < len(parts); j++ {
			q := &parts[j]
			dx := p.X - q.X
			dy := p.Y - q.Y
			distSq := dx*dx + dy*dy
			if distSq >= n.cfg.ConnectionDistSq {
				continue
			}

			opacity := 1 - distSq/n.cfg.ConnectionDistSq
			glitch := interference > n.cfg.GlitchThreshold && s.Rand.Float64() < n.cfg.GlitchProbability

			stroke := neuralStroke.WithAlpha(opacity * baseAlpha)
			if glitch {
				stroke = glitchStroke.WithAlpha(opacity)
			}
			ctx.Surface.StrokeLine(p.X, p.Y, q.X, q.Y, n.cfg.LineWidth, stroke)

			if interference > n.cfg.TextThreshold && s.Rand.Float64() < n.cfg.TextProbability {
				textColor := plainText
				if glitch {
					textColor = glitchText
				}
				label := fmt.Sprintf("%04b", s.Rand.Intn(16))
				ctx.Surface.FillText(label, (p.X+q.X)/2, (p.Y+q.Y)/2, n.cfg.TextSize, textColor)
			}
		}
	}
}

// RecoverFactor is the strength of the pull back to the lattice. It is zero
// while the pointer is held and fades out as interference rises.
func (n *Neural) RecoverFactor(down bool, interference float64) float64 {
	if down {
		return 0
	}
	return 1 - min(interference, n.cfg.InterferenceMaxAssume)/n.cfg.InterferenceMaxAssume
}

func (n *Neural) Update(s *State, ctx *Context) {
	ptr := ctx.Pointer
	restore := n.RecoverFactor(ptr.Down, s.Interference)
	intensity := s.Interference
	w, h := ctx.Bounds.Width, ctx.Bounds.Height

	for i := range s.Particles {
		p := &s.Particles[i]

		// Bearing from the pointer, taken before the particle moves.
		awayX := p.X - ptr.X
		awayY := p.Y - ptr.Y

		if restore > 0 {
			p.VX += (p.OriginX - p.X) * n.cfg.ReturnGain * restore
			p.VY += (p.OriginY - p.Y) * n.cfg.ReturnGain * restore
			p.VX *= n.cfg.ReturnDamping
			p.VY *= n.cfg.ReturnDamping
		}

		p.X += p.VX
		p.Y += p.VY

		radius := p.Size
		if intensity > 0 {
			p.X += (s.Rand.Float64() - 0.5) * intensity * n.cfg.JitterGain
			p.Y += (s.Rand.Float64() - 0.5) * intensity * n.cfg.JitterGain

			if intensity > n.cfg.RepelThreshold {
				angle := math.Atan2(awayY, awayX)
				p.VX += math.Cos(angle) * n.cfg.RepelGain
				p.VY += math.Sin(angle) * n.cfg.RepelGain
			}
		}

		// Bounce
		if p.X < 0 || p.X > w {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > h {
			p.VY = -p.VY
		}

		if intensity > 0 {
			radius += s.Rand.Float64() * n.cfg.RadiusJitter
		}
		ctx.Surface.FillCircle(p.X, p.Y, radius, p.Color)
	}
}
