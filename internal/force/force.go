// Package force is the force-law library. Every law conforms to the
// body.ForceFunc contract: a pure function of (body, dt) over parameters
// captured at construction time.
//
// Central and pairwise laws share a softening policy: when the separation
// distance drops below the softening floor the contribution is the zero
// vector rather than a near-singular spike. This trades physical accuracy
// near coincidence for numerical stability and is handled locally, never
// surfaced as an error.
package force

import (
	"math"

	"github.com/CDE90/physics-simulation/internal/body"
	"github.com/CDE90/physics-simulation/internal/polar"
)

// DefaultSoftening is the separation floor, in simulation units, below
// which central and pairwise forces contribute nothing.
const DefaultSoftening = 1.0

// DefaultG is the gravitational constant tuned for pixel-scale scenarios.
const DefaultG = 1000.0

// toward returns the unit-direction angle from (x, y) to (cx, cy).
func toward(x, y, cx, cy float64) polar.Angle {
	return polar.NewAngle(math.Atan2(cy-y, cx-x) * 180 / math.Pi)
}

// Orbital is a central attractive force of magnitude k/d² directed from
// the body toward (cx, cy). Below the softening floor it returns zero.
func Orbital(cx, cy, k float64) body.ForceFunc {
	return OrbitalSoftened(cx, cy, k, DefaultSoftening)
}

// OrbitalSoftened is Orbital with an explicit softening floor.
func OrbitalSoftened(cx, cy, k, softening float64) body.ForceFunc {
	return func(b *body.Body, dt float64) polar.Vector {
		dx := cx - b.X()
		dy := cy - b.Y()
		distance := math.Hypot(dx, dy)
		if distance < softening {
			return polar.Vector{}
		}
		return polar.New(k/(distance*distance), toward(b.X(), b.Y(), cx, cy))
	}
}

// Harmonic is a spring-like restoring force of magnitude k·d directed
// toward (cx, cy). Linear in distance, so no singularity guard is needed.
func Harmonic(cx, cy, k float64) body.ForceFunc {
	return func(b *body.Body, dt float64) polar.Vector {
		dx := cx - b.X()
		dy := cy - b.Y()
		distance := math.Hypot(dx, dy)
		if distance == 0 {
			return polar.Vector{}
		}
		return polar.New(k*distance, toward(b.X(), b.Y(), cx, cy))
	}
}

// Drag opposes the body's velocity with magnitude c·|v|².
func Drag(c float64) body.ForceFunc {
	return func(b *body.Body, dt float64) polar.Vector {
		v := b.Velocity()
		if v.IsZero() {
			return polar.Vector{}
		}
		return polar.New(c*v.Magnitude*v.Magnitude, v.Angle.Add(polar.NewAngle(180)))
	}
}

// Sum composes several force laws into one callback by polar-summing
// their contributions before integration.
func Sum(laws ...body.ForceFunc) body.ForceFunc {
	return func(b *body.Body, dt float64) polar.Vector {
		var resultant polar.Vector
		for _, law := range laws {
			resultant = resultant.Add(law(b, dt))
		}
		return resultant
	}
}
