package metrics

import (
	"math"
	"testing"

	"github.com/CDE90/physics-simulation/internal/body"
	"github.com/CDE90/physics-simulation/internal/polar"
)

func mustBody(t *testing.T, x, y, mass float64) *body.Body {
	t.Helper()
	b, err := body.New(x, y, 1, mass)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return b
}

func TestMomentumDrift(t *testing.T) {
	a := mustBody(t, 0, 0, 2)
	a.SetVelocity(polar.FromCartesian(10, 0)) // p = (20, 0)

	m := NewMomentumDrift()
	bodies := []*body.Body{a}

	m.Observe(bodies, 0)
	if m.Value() != 0 {
		t.Errorf("initial drift = %g, want 0", m.Value())
	}

	a.SetVelocity(polar.FromCartesian(11, 0)) // p = (22, 0), drift 2/20
	m.Observe(bodies, 1)
	if math.Abs(m.Value()-0.1) > 1e-9 {
		t.Errorf("drift = %g, want 0.1", m.Value())
	}

	// Drift tracks the maximum, not the latest.
	a.SetVelocity(polar.FromCartesian(10, 0))
	m.Observe(bodies, 2)
	if math.Abs(m.Value()-0.1) > 1e-9 {
		t.Errorf("max drift = %g, want 0.1", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("value after reset = %g, want 0", m.Value())
	}
}

func TestEnergyDrift(t *testing.T) {
	a := mustBody(t, 0, 0, 100)
	b := mustBody(t, 100, 0, 50)
	b.SetVelocity(polar.FromCartesian(0, 10))
	bodies := []*body.Body{a, b}

	e := NewEnergyDrift(1000, 1)
	e.Observe(bodies, 0)
	if e.Value() != 0 {
		t.Errorf("initial drift = %g, want 0", e.Value())
	}

	// Doubling a speed changes kinetic energy; drift must become nonzero.
	b.SetVelocity(polar.FromCartesian(0, 20))
	e.Observe(bodies, 1)
	if e.Value() == 0 {
		t.Error("expected nonzero drift after energy change")
	}
}

func TestRadialDeviation(t *testing.T) {
	b := mustBody(t, 200, 0, 1)
	bodies := []*body.Body{b}

	m := NewRadialDeviation(0, 0, 200)
	m.Observe(bodies, 0)
	if m.Value() != 0 {
		t.Errorf("on-radius deviation = %g, want 0", m.Value())
	}

	b2 := mustBody(t, 210, 0, 1)
	m.Observe([]*body.Body{b2}, 1)
	if math.Abs(m.Value()-0.05) > 1e-9 {
		t.Errorf("deviation = %g, want 0.05", m.Value())
	}
}
