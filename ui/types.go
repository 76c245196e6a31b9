// Package ui provides a descriptor-driven UI for the playground.
// Panels are defined through field metadata so the stats readout can grow
// alongside telemetry without touching layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar over Range
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// Normalize maps v into [0, 1] over the range.
func (fr FieldRange) Normalize(v float32) float32 {
	span := fr.Max - fr.Min
	if span <= 0 {
		return 0
	}
	n := (v - fr.Min) / span
	return min(max(n, 0), 1)
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string            // Unique identifier for the field
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for text (e.g., "%.2f")
	Range      FieldRange        // Value range for bars
	Visible    func(any) bool    // Optional visibility check (nil = always visible)
	Getter     func(any) float32 // Value extractor (for numeric fields)
	TextGetter func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string
	Title    string
	Sections []SectionDescriptor
	Width    int32 // Panel width (0 = theme default)
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	Accent        rl.Color
	Muted         rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	Warn          rl.Color
	Hot           rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	PanelWidth     int32
}

// DefaultTheme returns the ivory-and-ink playground theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 253, G: 252, B: 248, A: 235},
		PanelBorder:   rl.Color{R: 28, G: 25, B: 23, A: 60},
		SectionHeader: rl.Color{R: 88, G: 28, B: 135, A: 255},
		LabelColor:    rl.Color{R: 87, G: 83, B: 78, A: 255},
		ValueColor:    rl.Color{R: 28, G: 25, B: 23, A: 255},
		Accent:        rl.Color{R: 28, G: 25, B: 23, A: 255},
		Muted:         rl.Color{R: 168, G: 162, B: 158, A: 255},
		BarBg:         rl.Color{R: 231, G: 229, B: 228, A: 255},
		BarFill:       rl.Color{R: 15, G: 118, B: 110, A: 255},
		Warn:          rl.Color{R: 217, G: 119, B: 6, A: 255},
		Hot:           rl.Color{R: 220, G: 38, B: 38, A: 255},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     110,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
		PanelWidth:     260,
	}
}
