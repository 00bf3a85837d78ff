package telemetry

import (
	"math"
	"testing"

	"github.com/CDE90/physics-simulation/internal/body"
	"github.com/CDE90/physics-simulation/internal/polar"
)

func TestTrailRecordsPerUpdate(t *testing.T) {
	b, err := body.New(0, 0, 1, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.SetVelocity(polar.FromCartesian(10, 0))

	trail := NewTrail(100)
	trail.Attach(b)

	for i := 0; i < 5; i++ {
		b.Update(0.1)
	}

	if trail.Len() != 5 {
		t.Fatalf("points = %d, want 5", trail.Len())
	}

	// Points are post-update positions, oldest first.
	pts := trail.Points()
	if math.Abs(pts[0].X-1) > 1e-9 {
		t.Errorf("first point x = %g, want 1", pts[0].X)
	}
	if math.Abs(pts[4].X-5) > 1e-9 {
		t.Errorf("last point x = %g, want 5", pts[4].X)
	}
}

func TestTrailBounded(t *testing.T) {
	b, err := body.New(0, 0, 1, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.SetVelocity(polar.FromCartesian(1, 0))

	trail := NewTrail(3)
	trail.Attach(b)

	for i := 0; i < 10; i++ {
		b.Update(1)
	}

	if trail.Len() != 3 {
		t.Fatalf("points = %d, want 3", trail.Len())
	}
	// Oldest entries dropped.
	if math.Abs(trail.Points()[0].X-8) > 1e-9 {
		t.Errorf("oldest kept point x = %g, want 8", trail.Points()[0].X)
	}
}
