package systems

import (
	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
)

// Phase is the solid/liquid mode. A solid lattice springs back to its
// origins; each pointer release melts or refreezes the whole population.
type Phase struct {
	cfg config.PhaseConfig
}

// NewPhase creates the phase strategy.
func NewPhase(cfg config.PhaseConfig) *Phase {
	return &Phase{cfg: cfg}
}

func (ph *Phase) Mode() components.Mode { return components.ModePhase }

// Init starts every entry in the solid regime.
func (ph *Phase) Init(s *State) {
	s.LiquidPhase = false
}

func (ph *Phase) Render(s *State, ctx *Context) {}

// HeatRadius returns the pointer interaction radius for the regime.
func (ph *Phase) HeatRadius(liquid bool) float64 {
	if liquid {
		return ph.cfg.HeatRadiusLiquid
	}
	return ph.cfg.HeatRadiusSolid
}

// PushStrength returns the repulsion gain for the regime and pointer speed.
func (ph *Phase) PushStrength(liquid bool, pointerSpeed float64) float64 {
	switch {
	case liquid:
		return ph.cfg.LiquidPush
	case pointerSpeed > ph.cfg.StrongPushSpeed:
		return ph.cfg.SolidPushStrong
	default:
		return ph.cfg.SolidPushWeak
	}
}

func (ph *Phase) Update(s *State, ctx *Context) {
	ptr := ctx.Pointer
	liquid := s.LiquidPhase
	radius := ph.HeatRadius(liquid)
	push := ph.PushStrength(liquid, ctx.PointerSpeed)
	k := ph.cfg.SolidElasticity * (1 + ctx.Config.GravityStrength)
	rng := s.Rand

	for i := range s.Particles {
		p := &s.Particles[i]

		dx := ptr.X - p.X
		dy := ptr.Y - p.Y
		dist := distance(dx, dy)

		if dist < radius {
			force := (radius - dist) / radius
			shake := 0.0
			if !liquid {
				shake = rng.Float64() * ctx.PointerSpeed * ph.cfg.SolidShakeGain
			}
			d := safeDist(dist)
			p.VX -= dx/d*force*push + (rng.Float64()-0.5)*shake
			p.VY -= dy/d*force*push + (rng.Float64()-0.5)*shake
		}

		if liquid {
			p.VX += (rng.Float64() - 0.5) * ph.cfg.LiquidNoiseGain
			p.VY += (rng.Float64() - 0.5) * ph.cfg.LiquidNoiseGain
			p.VX *= ph.cfg.LiquidViscosity
			p.VY *= ph.cfg.LiquidViscosity
		} else {
			p.VX += (p.OriginX - p.X) * k
			p.VY += (p.OriginY - p.Y) * k
			p.VX *= ph.cfg.SolidDamping
			p.VY *= ph.cfg.SolidDamping
		}

		p.X += p.VX
		p.Y += p.VY

		if liquid {
			ctx.Surface.FillCircle(p.X, p.Y, p.Size, p.Color)
			continue
		}
		w, h := ph.SolidExtent(p.Size, distance(p.VX, p.VY))
		ctx.Surface.FillRect(p.X, p.Y, w, h, p.Color)
	}
}

// SolidExtent returns the rectangle drawn for a solid particle moving at
// speed: wider and flatter the faster it goes.
func (ph *Phase) SolidExtent(size, speed float64) (w, h float64) {
	stretch := min(speed, ph.cfg.MaxStretch)
	return size + stretch, size - stretch/2
}

// OnPointerUp flips the regime.
func (ph *Phase) OnPointerUp(s *State, ctx *Context) {
	s.LiquidPhase = !s.LiquidPhase
	s.Events.PhaseToggles++
}
