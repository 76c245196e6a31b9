package components

import (
	"math"
	"math/rand"
	"testing"
)

var testBounds = Bounds{Width: 800, Height: 600}

func TestColorAlpha(t *testing.T) {
	c := RGBA(10, 20, 30, 0.5)
	if c.A != 128 {
		t.Errorf("RGBA alpha 0.5 = %d, want 128", c.A)
	}
	if got := RGBA(0, 0, 0, 2).A; got != 255 {
		t.Errorf("alpha above one = %d, want 255", got)
	}
	if got := RGBA(0, 0, 0, -1).A; got != 0 {
		t.Errorf("negative alpha = %d, want 0", got)
	}
	if got := RGBA(0, 0, 0, 1).Fade(0.2).A; got != 51 {
		t.Errorf("Fade(0.2) = %d, want 51", got)
	}
	if got := c.WithAlpha(1); got.R != 10 || got.A != 255 {
		t.Errorf("WithAlpha(1) = %+v", got)
	}
}

func TestNeuralLattice(t *testing.T) {
	tests := []struct {
		total      int
		b          Bounds
		cols, rows int
	}{
		{10, Bounds{200, 100}, 5, 2},
		{100, Bounds{100, 100}, 10, 10},
		{0, Bounds{100, 100}, 1, 1},
	}
	for _, tt := range tests {
		cols, rows := NeuralLattice(tt.total, tt.b)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("NeuralLattice(%d, %v) = %d x %d, want %d x %d", tt.total, tt.b, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestPhaseOrigin(t *testing.T) {
	b := Bounds{Width: 100, Height: 100}
	tests := []struct {
		index int
		x, y  float64
	}{
		{0, 25, 25},
		{1, 75, 25},
		{3, 75, 75},
	}
	for _, tt := range tests {
		x, y := PhaseOrigin(tt.index, 4, b)
		if x != tt.x || y != tt.y {
			t.Errorf("PhaseOrigin(%d) = (%v, %v), want (%v, %v)", tt.index, x, y, tt.x, tt.y)
		}
	}
}

func TestNewParticleSpawnRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const total = 200

	for _, mode := range Modes() {
		for i := 0; i < total; i++ {
			p := NewParticle(rng, mode, i, total, testBounds)
			if p.Density < MinDensity || p.Density >= MinDensity+DensityRange {
				t.Fatalf("%v density = %v", mode, p.Density)
			}
			if len(p.History) != 0 {
				t.Fatalf("%v history not empty", mode)
			}

			switch mode {
			case ModeEntropy:
				if p.Size < 0.5 || p.Size >= 2 || math.Abs(p.VX) > 1 || math.Abs(p.VY) > 1 {
					t.Fatalf("entropy particle = %+v", p)
				}
				if p.Color.R != p.Color.G || p.Color.R >= 100 {
					t.Fatalf("entropy colour = %+v, want grey below 100", p.Color)
				}
			case ModeNeural:
				if p.X != p.OriginX || p.Y != p.OriginY {
					t.Fatalf("neural particle not at its origin: %+v", p)
				}
				if p.Size < 1.5 || p.Size >= 3.5 || math.Abs(p.VX) > 0.1 {
					t.Fatalf("neural particle = %+v", p)
				}
				if p.Color != NeuralViolet && p.Color != NeuralDark {
					t.Fatalf("neural colour = %+v", p.Color)
				}
			case ModePhase:
				x, y := PhaseOrigin(i, total, testBounds)
				if p.OriginX != x || p.OriginY != y || p.X != x || p.VX != 0 {
					t.Fatalf("phase particle %d = %+v, want origin (%v, %v)", i, p, x, y)
				}
				if p.Size != PhaseCellSize {
					t.Fatalf("phase size = %v", p.Size)
				}
			case ModeOptimization:
				if p.MaxSpeed < 2 || p.MaxSpeed >= 4 || p.VX != 0 {
					t.Fatalf("optimization particle = %+v", p)
				}
				if !testBounds.Contains(p.X, p.Y) {
					t.Fatalf("optimization particle outside surface: %+v", p)
				}
			}
		}
	}
}

func TestNeuralOriginsFollowLattice(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const total = 12
	cols, rows := NeuralLattice(total, testBounds)
	stepX := testBounds.Width / float64(cols+1)
	stepY := testBounds.Height / float64(rows+1)

	for i := 0; i < total; i++ {
		p := NewParticle(rng, ModeNeural, i, total, testBounds)
		wantX := float64(i%cols+1) * stepX
		wantY := float64(i/cols+1) * stepY
		if math.Abs(p.OriginX-wantX) > LatticeJitter/2 || math.Abs(p.OriginY-wantY) > LatticeJitter/2 {
			t.Errorf("slot %d origin = (%v, %v), want within %v of (%v, %v)",
				i, p.OriginX, p.OriginY, LatticeJitter/2, wantX, wantY)
		}
	}
}
