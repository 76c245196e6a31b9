package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/particlelab/config"
)

func TestPhaseToggle(t *testing.T) {
	ph := NewPhase(config.Cfg().Phase)

	for _, n := range []int{1, 2, 3, 10, 11} {
		s := newTestState()
		ph.Init(s)
		ctx, _ := newTestContext(0, 0, false)
		for i := 0; i < n; i++ {
			ph.OnPointerUp(s, ctx)
		}
		if want := n%2 == 1; s.LiquidPhase != want {
			t.Errorf("after %d releases liquid = %v, want %v", n, s.LiquidPhase, want)
		}
		if s.Events.PhaseToggles != n {
			t.Errorf("toggles = %d, want %d", s.Events.PhaseToggles, n)
		}
	}
}

func TestPhaseInitResetsToSolid(t *testing.T) {
	ph := NewPhase(config.Cfg().Phase)
	s := newTestState()
	s.LiquidPhase = true

	ph.Init(s)

	if s.LiquidPhase {
		t.Error("Init should reset to solid")
	}
}

func TestPhaseParameters(t *testing.T) {
	ph := NewPhase(config.Cfg().Phase)

	if r := ph.HeatRadius(false); r != 250 {
		t.Errorf("solid radius = %v, want 250", r)
	}
	if r := ph.HeatRadius(true); r != 150 {
		t.Errorf("liquid radius = %v, want 150", r)
	}

	tests := []struct {
		liquid bool
		speed  float64
		want   float64
	}{
		{true, 0, 2},
		{true, 50, 2},
		{false, 10, 0.5},
		{false, 10.5, 10},
	}
	for _, tt := range tests {
		if got := ph.PushStrength(tt.liquid, tt.speed); got != tt.want {
			t.Errorf("PushStrength(%v, %v) = %v, want %v", tt.liquid, tt.speed, got, tt.want)
		}
	}

	w, h := ph.SolidExtent(2, 0)
	if w != 2 || h != 2 {
		t.Errorf("SolidExtent at rest = %vx%v, want 2x2", w, h)
	}
	w, h = ph.SolidExtent(2, 30)
	if w != 7 || h != -0.5 {
		t.Errorf("SolidExtent capped = %vx%v, want 7x-0.5", w, h)
	}
}

func TestPhaseSolidSpringsBack(t *testing.T) {
	ph := NewPhase(config.Cfg().Phase)
	p := particleAt(120, 100)
	p.OriginX = 100
	s := newTestState(p)
	ctx, rec := newTestContext(-1000, -1000, false)

	ph.Update(s, ctx)

	got := s.Particles[0]
	if got.VX >= 0 {
		t.Errorf("VX = %v, want pull toward origin", got.VX)
	}
	// 20 * 0.08 * 1.5, damped by 0.85
	want := -20 * 0.08 * 1.5 * 0.85
	if math.Abs(got.VX-want) > 1e-12 {
		t.Errorf("VX = %v, want %v", got.VX, want)
	}
	if rec.Rects != 1 || rec.Circles != 0 {
		t.Errorf("solid drew %d rects %d circles, want 1 rect", rec.Rects, rec.Circles)
	}
}

func TestPhaseLiquidDrawsCircles(t *testing.T) {
	ph := NewPhase(config.Cfg().Phase)
	s := newTestState(particleAt(100, 100), particleAt(300, 300))
	s.LiquidPhase = true
	ctx, rec := newTestContext(-1000, -1000, false)

	ph.Update(s, ctx)

	if rec.Circles != 2 || rec.Rects != 0 {
		t.Errorf("liquid drew %d circles %d rects, want 2 circles", rec.Circles, rec.Rects)
	}
	for _, p := range s.Particles {
		if math.Abs(p.VX) > 0.05 || math.Abs(p.VY) > 0.05 {
			t.Errorf("liquid noise too large: (%v, %v)", p.VX, p.VY)
		}
	}
}

func TestPhasePointerRepels(t *testing.T) {
	ph := NewPhase(config.Cfg().Phase)
	s := newTestState(particleAt(150, 100))
	s.LiquidPhase = true
	ctx, _ := newTestContext(100, 100, false)

	ph.Update(s, ctx)

	// Push (150-50)/150 * 2 plus at most ±0.05 noise, then viscosity.
	if got := s.Particles[0].VX; got < 1.2 || got > 1.35 {
		t.Errorf("VX = %v, want repulsion around 1.28", got)
	}
}
