package metrics

import (
	"math"

	"github.com/CDE90/physics-simulation/internal/body"
)

// RadialDeviation tracks the worst relative departure of the first body
// from a reference circular orbit of radius r around (cx, cy). Used to
// judge integrator stability on orbital scenarios.
type RadialDeviation struct {
	cx, cy float64
	r      float64
	max    float64
}

func NewRadialDeviation(cx, cy, r float64) *RadialDeviation {
	return &RadialDeviation{cx: cx, cy: cy, r: r}
}

func (m *RadialDeviation) Name() string { return "radial_deviation" }

func (m *RadialDeviation) Observe(bodies []*body.Body, t float64) {
	if len(bodies) == 0 || m.r == 0 {
		return
	}
	b := bodies[0]
	dist := math.Hypot(b.X()-m.cx, b.Y()-m.cy)
	dev := math.Abs(dist-m.r) / m.r
	if dev > m.max {
		m.max = dev
	}
}

func (m *RadialDeviation) Value() float64 { return m.max }

func (m *RadialDeviation) Reset() { m.max = 0 }
