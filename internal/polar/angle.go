package polar

import (
	"fmt"
	"math"
)

// Angle is an orientation in degrees, always normalized to [0, 360).
// It is an immutable value type; every operation returns a new Angle.
type Angle struct {
	degrees float64
}

// NewAngle normalizes degrees of any real magnitude into [0, 360).
// Normalization is floor-style, so -10 wraps to 350.
func NewAngle(degrees float64) Angle {
	return Angle{degrees: normalize(degrees)}
}

func normalize(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	// Guard against float rounding pushing a tiny negative back up to 360.
	if d >= 360 {
		d = 0
	}
	return d
}

func (a Angle) Degrees() float64 { return a.degrees }

// Radians is derived on demand; only degrees are stored.
func (a Angle) Radians() float64 { return a.degrees * math.Pi / 180 }

func (a Angle) Add(other Angle) Angle {
	return NewAngle(a.degrees + other.degrees)
}

func (a Angle) Sub(other Angle) Angle {
	return NewAngle(a.degrees - other.degrees)
}

func (a Angle) String() string {
	return fmt.Sprintf("%.2f°", a.degrees)
}
