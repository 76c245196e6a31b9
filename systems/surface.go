package systems

import "github.com/pthm-cable/particlelab/components"

// Surface is the 2D drawing target handed to the engine each frame.
// Coordinates are surface-local; colours carry their own alpha and are
// blended over what is already painted.
type Surface interface {
	// Clear resets the whole surface to transparent.
	Clear(b components.Bounds)
	FillRect(x, y, w, h float64, c components.Color)
	FillCircle(x, y, r float64, c components.Color)
	StrokeLine(x1, y1, x2, y2, width float64, c components.Color)
	FillText(text string, x, y float64, size int, c components.Color)
}

// Discard is a Surface that draws nothing.
type Discard struct{}

func (Discard) Clear(components.Bounds)                                          {}
func (Discard) FillRect(x, y, w, h float64, c components.Color)                  {}
func (Discard) FillCircle(x, y, r float64, c components.Color)                   {}
func (Discard) StrokeLine(x1, y1, x2, y2, width float64, c components.Color)     {}
func (Discard) FillText(text string, x, y float64, size int, c components.Color) {}

// Recorder is a Surface that counts draw calls. Used by tests and by
// headless runs to report draw load.
type Recorder struct {
	Clears  int
	Rects   int
	Circles int
	Lines   int
	Texts   []string

	// LineColors counts strokes by colour with alpha stripped.
	LineColors map[components.Color]int
	// LastFill is the colour of the most recent rect fill.
	LastFill components.Color
	// LastRect is the most recent rect fill as x, y, w, h.
	LastRect [4]float64
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{LineColors: make(map[components.Color]int)}
}

// Reset clears all counters.
func (r *Recorder) Reset() {
	r.Clears, r.Rects, r.Circles, r.Lines = 0, 0, 0, 0
	r.Texts = r.Texts[:0]
	clear(r.LineColors)
}

// Calls returns the total number of draw calls recorded.
func (r *Recorder) Calls() int {
	return r.Clears + r.Rects + r.Circles + r.Lines + len(r.Texts)
}

func (r *Recorder) Clear(components.Bounds) {
	r.Clears++
}

func (r *Recorder) FillRect(x, y, w, h float64, c components.Color) {
	r.Rects++
	r.LastFill = c
	r.LastRect = [4]float64{x, y, w, h}
}

func (r *Recorder) FillCircle(x, y, radius float64, c components.Color) {
	r.Circles++
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c components.Color) {
	r.Lines++
	if r.LineColors == nil {
		r.LineColors = make(map[components.Color]int)
	}
	c.A = 0
	r.LineColors[c]++
}

func (r *Recorder) FillText(text string, x, y float64, size int, c components.Color) {
	r.Texts = append(r.Texts, text)
}
