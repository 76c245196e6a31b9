package components

import "math"

// Pointer is the shared pointer record. The host writes it from input events
// and the engine reads it at the start of each frame.
type Pointer struct {
	X, Y   float64
	Down   bool
	VX, VY float64 // delta between the last two move events

	LastX, LastY float64
}

// OffscreenPointer returns the idle pointer used before the first move event.
func OffscreenPointer() Pointer {
	return Pointer{X: -1000, Y: -1000}
}

// Move records a new pointer position and derives the frame-to-frame delta.
func (p *Pointer) Move(x, y float64) {
	p.VX = x - p.LastX
	p.VY = y - p.LastY
	p.LastX = x
	p.LastY = y
	p.X = x
	p.Y = y
}

// Press marks the pointer as held.
func (p *Pointer) Press() {
	p.Down = true
}

// Release clears the held flag.
func (p *Pointer) Release() {
	p.Down = false
}

// Speed returns the magnitude of the pointer delta.
func (p Pointer) Speed() float64 {
	return math.Sqrt(p.VX*p.VX + p.VY*p.VY)
}

// SimConfig is the per-frame configuration snapshot handed to the engine.
type SimConfig struct {
	Mode            Mode
	ParticleCount   int
	GravityStrength float64
}

// Sanitize clamps out-of-range values instead of rejecting them.
func (c SimConfig) Sanitize() SimConfig {
	if !c.Mode.Valid() {
		c.Mode = ModeEntropy
	}
	if c.ParticleCount < 0 {
		c.ParticleCount = 0
	}
	if c.GravityStrength < 0 || math.IsNaN(c.GravityStrength) {
		c.GravityStrength = 0
	}
	if c.GravityStrength > 1 {
		c.GravityStrength = 1
	}
	return c
}

// StepCount moves ParticleCount by delta and keeps it within [lo, hi].
func (c SimConfig) StepCount(delta, lo, hi int) SimConfig {
	n := c.ParticleCount + delta
	if n < lo {
		n = lo
	}
	if n > hi {
		n = hi
	}
	c.ParticleCount = n
	return c
}

// StepGravity moves GravityStrength by delta, clamps to [0, 1] and snaps to a tenth.
func (c SimConfig) StepGravity(delta float64) SimConfig {
	g := math.Round((c.GravityStrength+delta)*10) / 10
	c.GravityStrength = g
	return c.Sanitize()
}

// ComputeLoad is the share of maxCount requested, as a rounded percentage.
func (c SimConfig) ComputeLoad(maxCount int) int {
	if maxCount <= 0 {
		return 0
	}
	return int(math.Round(float64(c.ParticleCount) / float64(maxCount) * 100))
}
