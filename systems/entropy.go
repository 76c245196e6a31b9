package systems

import (
	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
)

// Entropy is the gravity well mode. Holding the pointer collapses the
// population toward it; releasing scatters everything nearby.
type Entropy struct {
	cfg config.EntropyConfig
}

// NewEntropy creates the entropy strategy.
func NewEntropy(cfg config.EntropyConfig) *Entropy {
	return &Entropy{cfg: cfg}
}

func (e *Entropy) Mode() components.Mode { return components.ModeEntropy }

func (e *Entropy) Init(s *State) {}

func (e *Entropy) Render(s *State, ctx *Context) {}

// MaxG returns the well strength for the given pointer and gravity factor.
func (e *Entropy) MaxG(down bool, gravity float64) float64 {
	if down {
		return e.cfg.MaxGDown
	}
	return e.cfg.MaxGBase + gravity*e.cfg.MaxGGravityScale
}

func (e *Entropy) Update(s *State, ctx *Context) {
	ptr := ctx.Pointer
	maxG := e.MaxG(ptr.Down, ctx.Config.GravityStrength)
	pull := e.cfg.PullHover
	if ptr.Down {
		pull = e.cfg.PullDown
	}
	w, h := ctx.Bounds.Width, ctx.Bounds.Height

	for i := range s.Particles {
		p := &s.Particles[i]

		dx := ptr.X - p.X
		dy := ptr.Y - p.Y
		dist := distance(dx, dy)

		if ptr.Down || dist < e.cfg.InfluenceRadius {
			force := (maxG - dist) / max(dist, e.cfg.MinForceDistance)
			d := safeDist(dist)
			k := force * p.Density * e.cfg.ForceDensityScale * pull
			p.VX += dx / d * k
			p.VY += dy / d * k
		}

		p.VX *= e.cfg.VelocityDamping
		p.VY *= e.cfg.VelocityDamping

		p.X += p.VX
		p.Y += p.VY

		// Toroidal wrap
		if p.X < 0 {
			p.X = w
		} else if p.X > w {
			p.X = 0
		}
		if p.Y < 0 {
			p.Y = h
		} else if p.Y > h {
			p.Y = 0
		}

		ctx.Surface.FillCircle(p.X, p.Y, p.Size, p.Color)
	}
}

// OnPointerUp throws every particle within the explosion radius radially
// away from the release point.
func (e *Entropy) OnPointerUp(s *State, ctx *Context) {
	mx, my := ctx.Pointer.X, ctx.Pointer.Y
	s.Events.Explosions++

	for i := range s.Particles {
		p := &s.Particles[i]
		dx := p.X - mx
		dy := p.Y - my
		dist := distance(dx, dy)
		if dist >= e.cfg.ExplosionRadius {
			continue
		}
		d := safeDist(dist)
		speed := s.Rand.Float64()*e.cfg.ExplosionSpeedSpan + e.cfg.ExplosionMinSpeed
		p.VX = dx / d * speed
		p.VY = dy / d * speed
		s.Events.Scattered++
	}
}
