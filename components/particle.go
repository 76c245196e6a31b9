package components

import (
	"math"
	"math/rand"
)

// Spawn palette.
var (
	NeuralViolet = RGBA(88, 28, 135, 1)
	NeuralDark   = RGBA(18, 18, 18, 0.8)
	PhaseTeal    = RGBA(15, 118, 110, 1)
	InkBlack     = RGBA(20, 20, 20, 1)
)

// Spawn parameters shared by all modes.
const (
	LatticeJitter   = 2.0 // neural origins are offset by at most ±LatticeJitter/2
	PhaseCellSize   = 2.0
	MinDensity      = 1.0
	DensityRange    = 30.0
	DefaultMaxSpeed = 2.0
)

// Particle is a single member of the engine's population. It has no identity
// beyond its index in the population slice.
type Particle struct {
	X, Y   float64
	VX, VY float64

	// Rest position for modes with restoring forces.
	OriginX, OriginY float64

	Size    float64
	Color   Color
	Density float64 // mass-like multiplier, entropy only

	// Optimization only.
	MaxSpeed float64

	// Reserved for trail rendering; always empty.
	History []Point
}

// NewParticle creates a particle for slot index of a population of total
// particles on a surface of size b.
func NewParticle(rng *rand.Rand, mode Mode, index, total int, b Bounds) Particle {
	p := Particle{
		X:        rng.Float64() * b.Width,
		Y:        rng.Float64() * b.Height,
		Size:     1,
		Color:    RGBA(0, 0, 0, 1),
		Density:  1,
		MaxSpeed: DefaultMaxSpeed,
	}
	p.OriginX, p.OriginY = p.X, p.Y
	p.ResetStats(rng, mode, index, total, b)
	return p
}

// ResetStats re-runs the spawn distribution for mode in place. Velocity and
// visual attributes are always reset.
func (p *Particle) ResetStats(rng *rand.Rand, mode Mode, index, total int, b Bounds) {
	p.VX, p.VY = 0, 0
	p.History = p.History[:0]

	switch mode {
	case ModeNeural:
		cols, rows := NeuralLattice(total, b)
		stepX := b.Width / float64(cols+1)
		stepY := b.Height / float64(rows+1)
		col := index % cols
		row := index / cols

		p.OriginX = float64(col+1)*stepX + (rng.Float64()-0.5)*LatticeJitter
		p.OriginY = float64(row+1)*stepY + (rng.Float64()-0.5)*LatticeJitter
		p.X, p.Y = p.OriginX, p.OriginY

		p.Size = rng.Float64()*2 + 1.5
		if rng.Float64() > 0.5 {
			p.Color = NeuralViolet
		} else {
			p.Color = NeuralDark
		}
		p.VX = (rng.Float64() - 0.5) * 0.2
		p.VY = (rng.Float64() - 0.5) * 0.2

	case ModePhase:
		p.OriginX, p.OriginY = PhaseOrigin(index, total, b)
		p.X, p.Y = p.OriginX, p.OriginY
		p.Size = PhaseCellSize
		p.Color = PhaseTeal.WithAlpha(rng.Float64()*0.4 + 0.4)

	case ModeOptimization:
		p.X = rng.Float64() * b.Width
		p.Y = rng.Float64() * b.Height
		p.Size = rng.Float64()*1.5 + 0.5
		p.MaxSpeed = rng.Float64()*2 + 2
		p.Color = InkBlack.WithAlpha(rng.Float64()*0.5 + 0.2)

	default:
		p.Size = rng.Float64()*1.5 + 0.5
		p.VX = (rng.Float64() - 0.5) * 2
		p.VY = (rng.Float64() - 0.5) * 2
		shade := uint8(rng.Intn(100))
		p.Color = RGBA(shade, shade, shade, rng.Float64()*0.5+0.2)
	}

	p.Density = rng.Float64()*DensityRange + MinDensity
}

// NeuralLattice returns the column and row count of the neural lattice.
func NeuralLattice(total int, b Bounds) (cols, rows int) {
	cols = latticeColumns(total, b)
	rows = int(math.Ceil(float64(total) / float64(cols)))
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// PhaseOrigin returns the grid cell centre for slot index. The grid spans the
// full surface width with square cells.
func PhaseOrigin(index, total int, b Bounds) (x, y float64) {
	cols := latticeColumns(total, b)
	padding := b.Width / float64(cols)
	col := index % cols
	row := index / cols

	x = float64(col)*padding + padding/2 + (b.Width-float64(cols)*padding)/2
	y = float64(row)*padding + padding/2
	return x, y
}

func latticeColumns(total int, b Bounds) int {
	cols := int(math.Ceil(math.Sqrt(float64(total) * b.Aspect())))
	if cols < 1 {
		cols = 1
	}
	return cols
}
