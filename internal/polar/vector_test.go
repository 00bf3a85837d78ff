package polar_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/CDE90/physics-simulation/internal/polar"
)

const tol = 1e-9

var _ = Describe("Vector", func() {
	Describe("FromCartesian", func() {
		It("round-trips Cartesian coordinates in every quadrant", func() {
			coords := [][2]float64{
				{3, 4}, {-3, 4}, {-3, -4}, {3, -4},
				{1, 0}, {0, 1}, {-1, 0}, {0, -1},
				{123.456, -0.001},
			}
			for _, c := range coords {
				v := polar.FromCartesian(c[0], c[1])
				Expect(v.X()).To(BeNumerically("~", c[0], tol))
				Expect(v.Y()).To(BeNumerically("~", c[1], tol))
			}
		})

		It("maps the origin to the zero vector with angle 0", func() {
			v := polar.FromCartesian(0, 0)
			Expect(v.Magnitude).To(BeZero())
			Expect(v.Angle.Degrees()).To(BeZero())
		})

		It("never stores a negative magnitude", func() {
			v := polar.FromCartesian(-5, -12)
			Expect(v.Magnitude).To(BeNumerically("~", 13, tol))
			Expect(v.Angle.Degrees()).To(BeNumerically("~", 180+math.Atan2(12, 5)*180/math.Pi, 1e-6))
		})
	})

	Describe("Add", func() {
		It("agrees with direct Cartesian summation", func() {
			a := polar.FromCartesian(3, 7)
			b := polar.FromCartesian(-10, 2.5)
			sum := a.Add(b)
			Expect(sum.X()).To(BeNumerically("~", -7, tol))
			Expect(sum.Y()).To(BeNumerically("~", 9.5, tol))
		})

		It("is commutative", func() {
			a := polar.New(5, polar.NewAngle(30))
			b := polar.New(2, polar.NewAngle(250))
			ab := a.Add(b)
			ba := b.Add(a)
			Expect(ab.Magnitude).To(BeNumerically("~", ba.Magnitude, tol))
			Expect(ab.X()).To(BeNumerically("~", ba.X(), tol))
			Expect(ab.Y()).To(BeNumerically("~", ba.Y(), tol))
		})

		It("cancels a vector against its negation", func() {
			v := polar.New(42, polar.NewAngle(123))
			sum := v.Add(v.Negate())
			Expect(sum.Magnitude).To(BeNumerically("~", 0, tol))
		})

		It("cancels opposite-direction vectors of equal magnitude", func() {
			a := polar.New(7, polar.NewAngle(0))
			b := polar.New(7, polar.NewAngle(180))
			Expect(a.Add(b).Magnitude).To(BeNumerically("~", 0, tol))
		})
	})

	Describe("Sub", func() {
		It("is addition of the negated vector", func() {
			a := polar.FromCartesian(10, -4)
			b := polar.FromCartesian(3, 9)
			diff := a.Sub(b)
			Expect(diff.X()).To(BeNumerically("~", 7, tol))
			Expect(diff.Y()).To(BeNumerically("~", -13, tol))
		})
	})

	Describe("Scale", func() {
		It("scales magnitude and keeps the angle for positive factors", func() {
			v := polar.New(3, polar.NewAngle(45))
			s := v.Scale(2.5)
			Expect(s.Magnitude).To(BeNumerically("~", 7.5, tol))
			Expect(s.Angle.Degrees()).To(BeNumerically("~", 45, tol))
		})

		It("flips the angle 180° for negative factors instead of negating magnitude", func() {
			v := polar.New(3, polar.NewAngle(45))
			s := v.Scale(-2)
			Expect(s.Magnitude).To(BeNumerically("~", 6, tol))
			Expect(s.Angle.Degrees()).To(BeNumerically("~", 225, tol))
		})

		It("zeroes the magnitude for a zero factor", func() {
			Expect(polar.New(9, polar.NewAngle(10)).Scale(0).Magnitude).To(BeZero())
		})
	})

	Describe("Div", func() {
		It("fails on a zero scalar with ErrDivideByZero", func() {
			_, err := polar.New(5, polar.NewAngle(0)).Div(0)
			Expect(err).To(MatchError(polar.ErrDivideByZero))
		})

		It("is equivalent to scaling by the reciprocal", func() {
			v := polar.New(9, polar.NewAngle(60))
			q, err := v.Div(-3)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Magnitude).To(BeNumerically("~", 3, tol))
			Expect(q.Angle.Degrees()).To(BeNumerically("~", 240, tol))
		})
	})

	Describe("Rotate", func() {
		It("advances the angle and keeps the magnitude", func() {
			v := polar.New(2, polar.NewAngle(350))
			r := v.Rotate(polar.NewAngle(20))
			Expect(r.Magnitude).To(BeNumerically("~", 2, tol))
			Expect(r.Angle.Degrees()).To(BeNumerically("~", 10, tol))
		})
	})
})
