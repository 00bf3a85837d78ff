package body

import (
	"errors"
	"fmt"
	"math"

	"github.com/CDE90/physics-simulation/internal/polar"
)

// ErrInvalidMass is returned when a body is constructed with mass <= 0.
// It is a precondition violation; callers are expected to treat it as fatal.
var ErrInvalidMass = errors.New("body: mass must be positive")

// ForceFunc computes the force acting on a body at the current instant.
// Implementations must be pure functions of the body's readable state and
// any parameters captured at construction time.
type ForceFunc func(b *Body, dt float64) polar.Vector

// Observer is invoked once after each completed Update, in registration
// order. Observers read position/velocity for trails and telemetry and
// must not mutate the body.
type Observer func(b *Body)

// Mode selects the integration scheme.
type Mode int

const (
	// ModeVerlet is velocity-Verlet: force is sampled before and after the
	// position update and the two accelerations are averaged for the
	// velocity update. Markedly more stable for orbital motion and the
	// default everywhere.
	ModeVerlet Mode = iota
	// ModeBasic updates velocity from a single force sample before the
	// position update. Kept for comparison runs; inferior for periodic
	// motion over long horizons.
	ModeBasic
)

func (m Mode) String() string {
	if m == ModeBasic {
		return "basic"
	}
	return "verlet"
}

// ModeFromString maps a config/CLI name to a Mode.
func ModeFromString(name string) (Mode, error) {
	switch name {
	case "", "verlet":
		return ModeVerlet, nil
	case "basic":
		return ModeBasic, nil
	}
	return ModeVerlet, fmt.Errorf("body: unknown integration mode %q", name)
}

// Body is a point mass advanced by the integrator. Position, velocity and
// acceleration are polar vectors; radius is inert rendering metadata and
// never enters the physics.
type Body struct {
	position     polar.Vector
	velocity     polar.Vector
	acceleration polar.Vector
	appliedForce polar.Vector
	lastForce    polar.Vector

	mass   float64
	radius float64
	mode   Mode

	forceFn   ForceFunc
	observers []Observer
}

// New creates a body at the given Cartesian position with zero velocity.
func New(x, y, radius, mass float64) (*Body, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidMass, mass)
	}
	return &Body{
		position: polar.FromCartesian(x, y),
		mass:     mass,
		radius:   radius,
	}, nil
}

func (b *Body) X() float64 { return b.position.X() }
func (b *Body) Y() float64 { return b.position.Y() }

func (b *Body) Position() polar.Vector     { return b.position }
func (b *Body) Velocity() polar.Vector     { return b.velocity }
func (b *Body) Acceleration() polar.Vector { return b.acceleration }
func (b *Body) LastForce() polar.Vector    { return b.lastForce }
func (b *Body) Mass() float64              { return b.mass }
func (b *Body) Radius() float64            { return b.radius }
func (b *Body) Mode() Mode                 { return b.mode }

// SetVelocity sets the initial velocity; scenarios call this once at setup.
func (b *Body) SetVelocity(v polar.Vector) { b.velocity = v }

func (b *Body) SetMode(m Mode) { b.mode = m }

// SetForceFunc installs the force callback sampled during Update. Multiple
// simultaneous force sources should be composed into one callback (see
// force.Sum) rather than overwriting each other here.
func (b *Body) SetForceFunc(fn ForceFunc) { b.forceFn = fn }

// AddObserver appends an update observer. Observers fire in registration
// order and are held for the lifetime of the simulation run.
func (b *Body) AddObserver(o Observer) { b.observers = append(b.observers, o) }

// ApplyForce applies an instantaneous force consumed by the next Update.
// The force is also retained in LastForce for introspection.
func (b *Body) ApplyForce(f polar.Vector) {
	b.appliedForce = f
	b.lastForce = f
}

// ApplyCentralForce applies a force of the given magnitude directed from
// the body toward (cx, cy); a negative magnitude repels.
func (b *Body) ApplyCentralForce(cx, cy, magnitude float64) {
	dx := cx - b.X()
	dy := cy - b.Y()
	angle := polar.NewAngle(math.Atan2(dy, dx) * 180 / math.Pi)
	b.ApplyForce(polar.New(1, angle).Scale(magnitude))
}

// accelFrom converts a force into an acceleration. A force of exactly zero
// magnitude short-circuits to the zero vector; there is no division.
func (b *Body) accelFrom(f polar.Vector) polar.Vector {
	if f.IsZero() {
		return polar.Vector{}
	}
	return polar.New(f.Magnitude/b.mass, f.Angle)
}

// Update advances the body by one fixed sub-step. It runs to completion
// with no yield points; a body is never left half-integrated.
func (b *Body) Update(dt float64) {
	if b.forceFn != nil {
		b.ApplyForce(b.forceFn(b, dt))
	}

	switch b.mode {
	case ModeBasic:
		b.updateBasic(dt)
	default:
		b.updateVerlet(dt)
	}

	// The applied force is consumed by the step; lastForce survives for
	// debugging readouts.
	b.appliedForce = polar.Vector{}

	for _, o := range b.observers {
		o(b)
	}
}

// updateVerlet advances position with a half-step of the current
// acceleration, re-samples the force at the new position, and advances
// velocity with the average of the two accelerations. Position and
// velocity are integrated in Cartesian components and reconverted to
// polar form.
func (b *Body) updateVerlet(dt float64) {
	acc := b.accelFrom(b.appliedForce)

	newX := b.X() + b.velocity.X()*dt + 0.5*acc.X()*dt*dt
	newY := b.Y() + b.velocity.Y()*dt + 0.5*acc.Y()*dt*dt
	b.position = polar.FromCartesian(newX, newY)

	// Second force sample at the advanced position. Without a callback the
	// re-sampled force is zero.
	var newAcc polar.Vector
	if b.forceFn != nil {
		newAcc = b.accelFrom(b.forceFn(b, dt))
	}

	vx := b.velocity.X() + 0.5*(acc.X()+newAcc.X())*dt
	vy := b.velocity.Y() + 0.5*(acc.Y()+newAcc.Y())*dt
	b.velocity = polar.FromCartesian(vx, vy)
	b.acceleration = newAcc
}

// updateBasic is the single-sample scheme: velocity first, then position
// from the already-updated velocity. Less stable than verlet at large dt.
func (b *Body) updateBasic(dt float64) {
	b.acceleration = b.accelFrom(b.appliedForce)

	vx := b.velocity.X() + b.acceleration.X()*dt
	vy := b.velocity.Y() + b.acceleration.Y()*dt
	b.velocity = polar.FromCartesian(vx, vy)

	newX := b.X() + b.velocity.X()*dt + 0.5*b.acceleration.X()*dt*dt
	newY := b.Y() + b.velocity.Y()*dt + 0.5*b.acceleration.Y()*dt*dt
	b.position = polar.FromCartesian(newX, newY)
}
