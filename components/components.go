// Package components defines the data carried through the playground simulation.
package components

// Bounds is the size of the drawing surface in surface-local units.
type Bounds struct {
	Width, Height float64
}

// Aspect returns width / height. Degenerate heights are treated as 1.
func (b Bounds) Aspect() float64 {
	if b.Height <= 0 {
		return b.Width
	}
	return b.Width / b.Height
}

// Contains reports whether (x, y) lies inside [0, Width] x [0, Height].
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

// Point is a past particle position.
type Point struct {
	X, Y float64
}

// Color is a straight (non-premultiplied) RGBA paint descriptor.
type Color struct {
	R, G, B, A uint8
}

// RGBA builds a colour from 8-bit channels and a [0, 1] alpha.
func RGBA(r, g, b uint8, alpha float64) Color {
	return Color{R: r, G: g, B: b, A: alphaByte(alpha)}
}

// Alpha returns the alpha channel as a [0, 1] fraction.
func (c Color) Alpha() float64 {
	return float64(c.A) / 255
}

// WithAlpha returns c with its alpha replaced by the given [0, 1] fraction.
func (c Color) WithAlpha(alpha float64) Color {
	c.A = alphaByte(alpha)
	return c
}

// Fade scales the existing alpha by factor.
func (c Color) Fade(factor float64) Color {
	return c.WithAlpha(c.Alpha() * factor)
}

func alphaByte(alpha float64) uint8 {
	if alpha <= 0 {
		return 0
	}
	if alpha >= 1 {
		return 255
	}
	return uint8(alpha*255 + 0.5)
}
