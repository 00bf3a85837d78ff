package force

import (
	"math"

	"github.com/CDE90/physics-simulation/internal/body"
	"github.com/CDE90/physics-simulation/internal/polar"
)

type point struct {
	x, y float64
}

// Gravity computes pairwise gravitational attraction over a closed set of
// bodies. For a queried body it polar-sums G·m·m'/d² toward every other
// body, skipping the body itself and any pair closer than the softening
// floor.
//
// Bodies in a sub-step are updated sequentially, so by default a
// later-updated body sees peers that have already advanced within the same
// step. Drivers that need order-independent evaluation call BeginStep
// before each sub-step; Force then reads the frozen peer positions instead
// of live ones. This is also what makes concurrent per-body updates safe.
type Gravity struct {
	G         float64
	Softening float64

	bodies []*body.Body
	frozen []point
}

// NewGravity binds the law to its peer set. The set is read-only from the
// law's point of view; the driver retains ownership of the bodies.
func NewGravity(g float64, bodies ...*body.Body) *Gravity {
	return &Gravity{
		G:         g,
		Softening: DefaultSoftening,
		bodies:    bodies,
	}
}

// BeginStep snapshots every peer position. Called by the driver at the
// start of a sub-step to double-buffer force evaluation.
func (g *Gravity) BeginStep() {
	if g.frozen == nil {
		g.frozen = make([]point, len(g.bodies))
	}
	for i, b := range g.bodies {
		g.frozen[i] = point{x: b.X(), y: b.Y()}
	}
}

// Force implements the body.ForceFunc contract for the bound peer set.
func (g *Gravity) Force(b *body.Body, dt float64) polar.Vector {
	var resultant polar.Vector

	for i, other := range g.bodies {
		if other == b {
			continue
		}

		// With a snapshot active the live accessors must not be touched at
		// all; peers may be mid-update on another goroutine.
		var ox, oy float64
		if g.frozen != nil {
			ox, oy = g.frozen[i].x, g.frozen[i].y
		} else {
			ox, oy = other.X(), other.Y()
		}

		dx := ox - b.X()
		dy := oy - b.Y()
		distance := math.Hypot(dx, dy)
		if distance < g.Softening {
			continue
		}

		magnitude := g.G * b.Mass() * other.Mass() / (distance * distance)
		angle := polar.NewAngle(math.Atan2(dy, dx) * 180 / math.Pi)
		resultant = resultant.Add(polar.New(magnitude, angle))
	}

	return resultant
}
