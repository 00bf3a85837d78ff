// Package metrics provides run diagnostics sampled once per frame by the
// driver. Each metric reduces the body set to a scalar suitable for bounded
// drift checks; softening perturbs exact conservation, so drifts are
// tracked, not asserted, here.
package metrics

import (
	"math"

	"github.com/CDE90/physics-simulation/internal/body"
)

// MomentumDrift tracks how far total linear momentum wanders from its
// initial value. Value is the maximum |p - p0| observed, normalized by
// |p0| when the initial momentum is nonzero.
type MomentumDrift struct {
	initPX, initPY float64
	initNorm       float64
	maxDrift       float64
	samples        int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(bodies []*body.Body, t float64) {
	var px, py float64
	for _, b := range bodies {
		v := b.Velocity()
		px += b.Mass() * v.X()
		py += b.Mass() * v.Y()
	}

	if m.samples == 0 {
		m.initPX, m.initPY = px, py
		m.initNorm = math.Hypot(px, py)
	}
	m.samples++

	drift := math.Hypot(px-m.initPX, py-m.initPY)
	if m.initNorm > 0 {
		drift /= m.initNorm
	}
	if drift > m.maxDrift {
		m.maxDrift = drift
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initPX, m.initPY = 0, 0
	m.initNorm = 0
	m.maxDrift = 0
	m.samples = 0
}
