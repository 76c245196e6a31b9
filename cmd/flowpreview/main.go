// Flow field preview tool - interactive visualization of the optimization
// topology with a time slider.
//
// Usage: go run ./cmd/flowpreview
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlelab/components"
	"github.com/pthm-cable/particlelab/renderer"
	"github.com/pthm-cable/particlelab/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 128
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	// The preview samples a window of the field the size of a typical canvas.
	field := components.Bounds{Width: 1280, Height: 720}

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	pixels := make([]color.RGBA, gridSize*gridSize)

	var t float32
	var spacing float32 = 32
	showVectors := true
	animating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			// Engine time advances 0.01 per frame at 60fps.
			t += rl.GetFrameTime() * 0.6
			needsRegen = true
		}

		if needsRegen {
			fillAngles(pixels, field, float64(t))
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		preview := rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize * float32(field.Height/field.Width)}
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			preview,
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLinesEx(preview, 1, rl.DarkGray)

		if showVectors {
			scale := preview.Width / float32(field.Width)
			cam := rl.Camera2D{Offset: rl.Vector2{X: preview.X, Y: preview.Y}, Zoom: scale}
			rl.BeginMode2D(cam)
			renderer.NewFlowOverlay(spacing).Draw(field, float64(t))
			rl.EndMode2D()
		}

		// Probe under the mouse
		mouse := rl.GetMousePosition()
		statsY := int32(preview.Y + preview.Height + 15)
		if rl.CheckCollisionPointRec(mouse, preview) {
			fx := float64((mouse.X-preview.X)/preview.Width) * field.Width
			fy := float64((mouse.Y-preview.Y)/preview.Height) * field.Height
			angle := systems.FlowAngle(fx, fy, float64(t))
			rl.DrawText(fmt.Sprintf("(%.0f, %.0f)  angle: %.3f rad  (%.1f deg mod 360)", fx, fy, angle, math.Mod(angle*180/math.Pi, 360)), 15, statsY, 16, rl.DarkGray)
		}
		rl.DrawText(fmt.Sprintf("Time: %.2f", t), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Flow Field", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Time (engine seconds)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newT := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "60",
			t, 0, 60,
		)
		rl.DrawText(fmt.Sprintf("%.2f", t), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newT != t {
			t = newT
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Vector spacing (px)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		spacing = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"8", "96",
			spacing, 8, 96,
		)
		rl.DrawText(fmt.Sprintf("%.0f", spacing), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(showVectors, "Hide Vectors", "Show Vectors")) {
			showVectors = !showVectors
		}
		panelY += 55

		rl.DrawText("angle(x, y, t) =", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		for _, line := range []string{
			"  ( sin(0.003x)",
			"  + cos(0.003y)",
			"  + sin(0.003(x+y)/2 + t)",
			"  + cos(0.003(x-y)/2) ) * pi",
		} {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Colour shows direction; hover to probe", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// fillAngles colours each cell by flow direction.
func fillAngles(pixels []color.RGBA, b components.Bounds, t float64) {
	for gy := 0; gy < gridSize; gy++ {
		y := (float64(gy) + 0.5) / gridSize * b.Height
		for gx := 0; gx < gridSize; gx++ {
			x := (float64(gx) + 0.5) / gridSize * b.Width
			angle := systems.FlowAngle(x, y, t)
			hue := math.Mod(angle, 2*math.Pi)
			if hue < 0 {
				hue += 2 * math.Pi
			}
			c := rl.ColorFromHSV(float32(hue*180/math.Pi), 0.35, 0.97)
			pixels[gy*gridSize+gx] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		}
	}
}
