package body

import (
	"errors"
	"math"
	"testing"

	"github.com/CDE90/physics-simulation/internal/polar"
)

func mustBody(t *testing.T, x, y, radius, mass float64) *Body {
	t.Helper()
	b, err := New(x, y, radius, mass)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return b
}

func TestNewInvalidMass(t *testing.T) {
	tests := []struct {
		name string
		mass float64
	}{
		{"zero", 0},
		{"negative", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(0, 0, 1, tt.mass)
			if !errors.Is(err, ErrInvalidMass) {
				t.Errorf("New with mass %g: got %v, want ErrInvalidMass", tt.mass, err)
			}
		})
	}
}

func TestFreeMotion(t *testing.T) {
	b := mustBody(t, 100, 50, 5, 2)
	b.SetVelocity(polar.FromCartesian(10, -4))

	dt := 1.0 / 60
	for i := 0; i < 60; i++ {
		b.Update(dt)
	}

	// One second of drift with no force.
	if math.Abs(b.X()-110) > 1e-6 {
		t.Errorf("x = %g, want 110", b.X())
	}
	if math.Abs(b.Y()-46) > 1e-6 {
		t.Errorf("y = %g, want 46", b.Y())
	}
	if !b.Acceleration().IsZero() {
		t.Errorf("acceleration = %v, want zero", b.Acceleration())
	}
}

func TestConstantForceMatchesAnalytic(t *testing.T) {
	// Velocity-Verlet is exact for constant acceleration, so position must
	// match x = 0.5·a·t² to float precision after any number of steps.
	b := mustBody(t, 0, 0, 1, 2)
	b.SetForceFunc(func(_ *Body, _ float64) polar.Vector {
		return polar.FromCartesian(8, 0) // a = 4 along +x
	})

	dt := 0.01
	steps := 500
	for i := 0; i < steps; i++ {
		b.Update(dt)
	}

	tTotal := dt * float64(steps)
	want := 0.5 * 4 * tTotal * tTotal
	if math.Abs(b.X()-want) > 1e-6 {
		t.Errorf("x = %g, want %g", b.X(), want)
	}
	wantV := 4 * tTotal
	if math.Abs(b.Velocity().X()-wantV) > 1e-6 {
		t.Errorf("vx = %g, want %g", b.Velocity().X(), wantV)
	}
}

func TestZeroForceShortCircuits(t *testing.T) {
	b := mustBody(t, 0, 0, 1, 3)
	b.SetForceFunc(func(_ *Body, _ float64) polar.Vector {
		return polar.Vector{}
	})

	b.Update(0.1)

	if !b.Acceleration().IsZero() {
		t.Errorf("acceleration = %v, want zero", b.Acceleration())
	}
	if !b.Velocity().IsZero() {
		t.Errorf("velocity = %v, want zero", b.Velocity())
	}
}

func TestAppliedForceConsumedLastForceRetained(t *testing.T) {
	b := mustBody(t, 0, 0, 1, 1)
	f := polar.FromCartesian(6, 0)
	b.ApplyForce(f)

	b.Update(0.1)

	if got := b.LastForce().Magnitude; math.Abs(got-6) > 1e-9 {
		t.Errorf("last force magnitude = %g, want 6", got)
	}

	// A second update with no new force must not re-apply the old one.
	vx := b.Velocity().X()
	b.Update(0.1)
	if math.Abs(b.Velocity().X()-vx) > 1e-9 {
		t.Errorf("velocity changed after force was consumed: %g -> %g", vx, b.Velocity().X())
	}
	if got := b.LastForce().Magnitude; math.Abs(got-6) > 1e-9 {
		t.Errorf("last force lost after consumption: %g", got)
	}
}

func TestApplyCentralForce(t *testing.T) {
	b := mustBody(t, 100, 0, 1, 1)

	b.ApplyCentralForce(0, 0, 50)
	f := b.LastForce()
	if math.Abs(f.Magnitude-50) > 1e-9 {
		t.Errorf("magnitude = %g, want 50", f.Magnitude)
	}
	if math.Abs(f.X()-(-50)) > 1e-6 {
		t.Errorf("force x = %g, want -50 (toward center)", f.X())
	}

	// Negative magnitude repels.
	b.ApplyCentralForce(0, 0, -50)
	if got := b.LastForce().X(); math.Abs(got-50) > 1e-6 {
		t.Errorf("repulsive force x = %g, want 50", got)
	}
}

func TestObserversNotifiedInOrder(t *testing.T) {
	b := mustBody(t, 0, 0, 1, 1)

	var calls []int
	b.AddObserver(func(_ *Body) { calls = append(calls, 1) })
	b.AddObserver(func(_ *Body) { calls = append(calls, 2) })

	b.Update(0.1)

	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("observer calls = %v, want [1 2]", calls)
	}

	b.Update(0.1)
	if len(calls) != 4 {
		t.Errorf("expected one notification per observer per update, got %v", calls)
	}
}

func TestObserverSeesUpdatedState(t *testing.T) {
	b := mustBody(t, 0, 0, 1, 1)
	b.SetVelocity(polar.FromCartesian(10, 0))

	var observedX float64
	b.AddObserver(func(ob *Body) { observedX = ob.X() })

	b.Update(1.0)

	if math.Abs(observedX-10) > 1e-9 {
		t.Errorf("observer saw x = %g, want post-update 10", observedX)
	}
}

func TestModeFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeVerlet, false},
		{"verlet", ModeVerlet, false},
		{"basic", ModeBasic, false},
		{"rk4", ModeVerlet, true},
	}

	for _, tt := range tests {
		got, err := ModeFromString(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ModeFromString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Errorf("ModeFromString(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBasicModeLessStableThanVerlet(t *testing.T) {
	// Same circular-orbit setup under both schemes; the basic integrator
	// must drift at least as much in orbital radius.
	radius := 200.0
	k := 200000.0
	speed := math.Sqrt(k / radius)

	drift := func(mode Mode) float64 {
		b := mustBody(t, radius, 0, 1, 1)
		b.SetMode(mode)
		b.SetVelocity(polar.New(speed, polar.NewAngle(90)))
		b.SetForceFunc(func(ob *Body, _ float64) polar.Vector {
			d := math.Hypot(ob.X(), ob.Y())
			if d < 1 {
				return polar.Vector{}
			}
			return polar.New(k/(d*d), polar.NewAngle(math.Atan2(-ob.Y(), -ob.X())*180/math.Pi))
		})

		dt := 1.0 / 60
		maxDev := 0.0
		for i := 0; i < 2000; i++ {
			b.Update(dt)
			dev := math.Abs(math.Hypot(b.X(), b.Y())-radius) / radius
			if dev > maxDev {
				maxDev = dev
			}
		}
		return maxDev
	}

	verlet := drift(ModeVerlet)
	basic := drift(ModeBasic)

	if verlet > 0.05 {
		t.Errorf("verlet radial drift %.4f exceeds 5%%", verlet)
	}
	if basic < verlet {
		t.Errorf("basic mode (%.4f) outperformed verlet (%.4f); expected it to drift more", basic, verlet)
	}
}
