package polar

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivideByZero is returned when a vector is divided by a zero scalar.
// Division never silently produces Inf or NaN components.
var ErrDivideByZero = errors.New("polar: division by zero scalar")

// Vector is a 2D vector stored as (magnitude, angle). Magnitude is always
// non-negative; direction reversal is expressed by flipping the angle 180°,
// so callers must consult the angle, never the sign of the magnitude.
type Vector struct {
	Magnitude float64
	Angle     Angle
}

// New builds a vector from an already non-negative magnitude and an angle.
func New(magnitude float64, angle Angle) Vector {
	return Vector{Magnitude: magnitude, Angle: angle}
}

// FromCartesian converts (x, y) into polar form. The origin maps to the
// zero vector with angle 0 by convention.
func FromCartesian(x, y float64) Vector {
	magnitude := math.Hypot(x, y)
	if magnitude == 0 {
		return Vector{}
	}
	return Vector{
		Magnitude: magnitude,
		Angle:     NewAngle(math.Atan2(y, x) * 180 / math.Pi),
	}
}

func (v Vector) X() float64 { return v.Magnitude * math.Cos(v.Angle.Radians()) }
func (v Vector) Y() float64 { return v.Magnitude * math.Sin(v.Angle.Radians()) }

// IsZero reports whether the vector has no magnitude.
func (v Vector) IsZero() bool { return v.Magnitude == 0 }

// Add combines two vectors. The magnitude comes from the law of cosines on
// the angle difference; the angle comes from atan2 of the summed Cartesian
// components, which resolves the quadrant without law-of-sines ambiguity.
func (v Vector) Add(other Vector) Vector {
	diff := v.Angle.Radians() - other.Angle.Radians()
	m2 := v.Magnitude*v.Magnitude + other.Magnitude*other.Magnitude +
		2*v.Magnitude*other.Magnitude*math.Cos(diff)
	if m2 <= 0 {
		// Opposite vectors of equal magnitude; angle is irrelevant at zero,
		// rounding can make m2 fractionally negative.
		return Vector{Magnitude: 0, Angle: v.Angle}
	}

	x := v.X() + other.X()
	y := v.Y() + other.Y()
	return Vector{
		Magnitude: math.Sqrt(m2),
		Angle:     NewAngle(math.Atan2(y, x) * 180 / math.Pi),
	}
}

// Sub is addition of the negated vector.
func (v Vector) Sub(other Vector) Vector {
	return v.Add(other.Negate())
}

// Negate keeps the magnitude and flips the angle by 180°.
func (v Vector) Negate() Vector {
	return Vector{Magnitude: v.Magnitude, Angle: v.Angle.Add(NewAngle(180))}
}

// Scale multiplies the magnitude by |k|. A negative factor flips the angle
// by 180° instead of storing a negative magnitude.
func (v Vector) Scale(k float64) Vector {
	angle := v.Angle
	if k < 0 {
		angle = angle.Add(NewAngle(180))
	}
	return Vector{Magnitude: v.Magnitude * math.Abs(k), Angle: angle}
}

// Div divides the magnitude by k, failing on a zero scalar.
func (v Vector) Div(k float64) (Vector, error) {
	if k == 0 {
		return Vector{}, ErrDivideByZero
	}
	return v.Scale(1 / k), nil
}

// Rotate advances the angle by a, keeping the magnitude.
func (v Vector) Rotate(a Angle) Vector {
	return Vector{Magnitude: v.Magnitude, Angle: v.Angle.Add(a)}
}

func (v Vector) String() string {
	return fmt.Sprintf("%.2f @ %s", v.Magnitude, v.Angle)
}
