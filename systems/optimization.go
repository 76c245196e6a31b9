package systems

import (
	"math"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/config"
)

// Optimization advects particles along the flow field, steering them to
// the pointer while it is held. Trails come from the translucent background
// fill, not from particle history.
type Optimization struct {
	cfg       config.OptimizationConfig
	colorDown components.Color
	colorIdle components.Color
}

// NewOptimization creates the optimization strategy.
func NewOptimization(cfg config.OptimizationConfig) *Optimization {
	return &Optimization{
		cfg:       cfg,
		colorDown: cfg.ColorDown.Color(),
		colorIdle: cfg.ColorIdle.Color(),
	}
}

func (o *Optimization) Mode() components.Mode { return components.ModeOptimization }

func (o *Optimization) Init(s *State) {}

func (o *Optimization) Render(s *State, ctx *Context) {}

// Influence is the blend weight of the pointer direction against the field.
func (o *Optimization) Influence(down bool) float64 {
	if down {
		return o.cfg.InfluenceDown
	}
	return o.cfg.InfluenceIdle
}

func (o *Optimization) Update(s *State, ctx *Context) {
	ptr := ctx.Pointer
	b := ctx.Bounds
	influence := o.Influence(ptr.Down)

	color, size := o.colorIdle, o.cfg.DrawSizeIdle
	if ptr.Down {
		color, size = o.colorDown, o.cfg.DrawSizeDown
	}

	for i := range s.Particles {
		p := &s.Particles[i]

		fx, fy := FlowVector(p.X, p.Y, ctx.Time)
		toPointer := math.Atan2(ptr.Y-p.Y, ptr.X-p.X)
		mx, my := math.Cos(toPointer), math.Sin(toPointer)

		tx := fx*(1-influence) + mx*influence
		ty := fy*(1-influence) + my*influence

		p.VX += tx * o.cfg.Acceleration
		p.VY += ty * o.cfg.Acceleration

		limit := p.MaxSpeed
		if ptr.Down {
			limit *= o.cfg.LimitMultiplier
		}
		p.VX, p.VY = clampSpeed(p.VX, p.VY, limit)

		p.X += p.VX
		p.Y += p.VY

		reached := ptr.Down && distance(ptr.X-p.X, ptr.Y-p.Y) < o.cfg.ResetDistance
		if reached || !b.Contains(p.X, p.Y) {
			p.X = s.Rand.Float64() * b.Width
			p.Y = s.Rand.Float64() * b.Height
			p.VX, p.VY = 0, 0
			s.Events.Respawns++
		}

		ctx.Surface.FillRect(p.X, p.Y, size, size, color)
	}
}
