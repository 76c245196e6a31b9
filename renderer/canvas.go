// Package renderer provides raylib drawing for the playground.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlelab/components"
)

// Canvas is a persistent drawing surface backed by a render texture. It is
// never cleared implicitly between frames, so translucent background fills
// leave fading trails of earlier frames.
//
// Surface calls are only valid between Begin and End.
type Canvas struct {
	target rl.RenderTexture2D
	width  int32
	height int32
	loaded bool
}

// NewCanvas creates a canvas of the given size. Must be called after the
// raylib window is created.
func NewCanvas(width, height int32) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the backing texture. Like a browser canvas, resizing
// discards what was painted.
func (c *Canvas) Resize(width, height int32) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if c.loaded && width == c.width && height == c.height {
		return
	}
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
	}
	c.target = rl.LoadRenderTexture(width, height)
	c.width, c.height = width, height
	c.loaded = true

	rl.BeginTextureMode(c.target)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
}

// Bounds returns the canvas size in surface units.
func (c *Canvas) Bounds() components.Bounds {
	return components.Bounds{Width: float64(c.width), Height: float64(c.height)}
}

// Begin redirects drawing to the canvas.
func (c *Canvas) Begin() {
	rl.BeginTextureMode(c.target)
}

// End restores drawing to the screen.
func (c *Canvas) End() {
	rl.EndTextureMode()
}

// Present draws the canvas onto the screen at its natural size.
func (c *Canvas) Present() {
	// Render textures are stored upside down, so flip the source
	srcRect := rl.Rectangle{
		X:      0,
		Y:      float32(c.height),
		Width:  float32(c.width),
		Height: -float32(c.height),
	}
	dstRect := rl.Rectangle{
		X:      0,
		Y:      0,
		Width:  float32(c.width),
		Height: float32(c.height),
	}
	rl.DrawTexturePro(c.target.Texture, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload releases GPU resources.
func (c *Canvas) Unload() {
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
		c.loaded = false
	}
}

// Clear resets the canvas to transparent.
func (c *Canvas) Clear(components.Bounds) {
	rl.ClearBackground(rl.Blank)
}

// FillRect fills an axis-aligned rectangle. A negative extent grows the
// rectangle up or left from (x, y).
func (c *Canvas) FillRect(x, y, w, h float64, col components.Color) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	rl.DrawRectangleRec(rl.Rectangle{
		X:      float32(x),
		Y:      float32(y),
		Width:  float32(w),
		Height: float32(h),
	}, ToRL(col))
}

// FillCircle fills a circle of radius r centred on (x, y).
func (c *Canvas) FillCircle(x, y, r float64, col components.Color) {
	rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, float32(r), ToRL(col))
}

// StrokeLine draws a line segment.
func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col components.Color) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(x1), Y: float32(y1)},
		rl.Vector2{X: float32(x2), Y: float32(y2)},
		float32(width),
		ToRL(col),
	)
}

// FillText draws text with its baseline-left corner near (x, y).
func (c *Canvas) FillText(text string, x, y float64, size int, col components.Color) {
	rl.DrawText(text, int32(x), int32(y)-int32(size), int32(size), ToRL(col))
}

// ToRL converts a simulation colour to a raylib colour.
func ToRL(c components.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
