package metrics

import (
	"math"

	"github.com/CDE90/physics-simulation/internal/body"
)

// EnergyDrift tracks the maximum relative drift of total mechanical energy
// (kinetic plus pairwise gravitational potential) from its initial value.
type EnergyDrift struct {
	g         float64
	softening float64

	initial float64
	max     float64
	samples int
}

func NewEnergyDrift(g, softening float64) *EnergyDrift {
	return &EnergyDrift{g: g, softening: softening}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(bodies []*body.Body, t float64) {
	energy := e.total(bodies)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		if drift > e.max {
			e.max = drift
		}
	}
}

func (e *EnergyDrift) total(bodies []*body.Body) float64 {
	var ke, pe float64
	for i, b := range bodies {
		v := b.Velocity()
		ke += 0.5 * b.Mass() * v.Magnitude * v.Magnitude

		for _, other := range bodies[i+1:] {
			dx := other.X() - b.X()
			dy := other.Y() - b.Y()
			r := math.Hypot(dx, dy)
			if r < e.softening {
				r = e.softening
			}
			pe -= e.g * b.Mass() * other.Mass() / r
		}
	}
	return ke + pe
}

func (e *EnergyDrift) Value() float64 { return e.max }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}
