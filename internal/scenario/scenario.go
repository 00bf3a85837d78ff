// Package scenario builds ready-to-run body sets and force wiring from a
// config, keyed by scenario name. It is the registry the CLI and the live
// view resolve against.
package scenario

import (
	"fmt"
	"math"

	"github.com/CDE90/physics-simulation/internal/body"
	"github.com/CDE90/physics-simulation/internal/config"
	"github.com/CDE90/physics-simulation/internal/force"
	"github.com/CDE90/physics-simulation/internal/metrics"
	"github.com/CDE90/physics-simulation/internal/polar"
	"github.com/CDE90/physics-simulation/internal/sim"
)

// Scenario is an assembled simulation: bodies with their force callbacks
// installed, the pre-step hooks the force laws need for double-buffering,
// and the default metrics for the scenario type.
type Scenario struct {
	Name     string
	Bodies   []*body.Body
	PreSteps []sim.PreStepper
	Metrics  []sim.Metric
}

type builder func(cfg *config.Config) (*Scenario, error)

var builders = map[string]builder{
	"orbit":     buildOrbit,
	"threebody": buildThreeBody,
	"spring":    buildSpring,
}

// Names lists the known scenario names.
func Names() []string {
	return []string{"orbit", "spring", "threebody"}
}

// Build assembles the scenario named by cfg.Scenario.
func Build(cfg *config.Config) (*Scenario, error) {
	b, ok := builders[cfg.Scenario]
	if !ok {
		return nil, fmt.Errorf("scenario: unknown scenario %q (known: %v)", cfg.Scenario, Names())
	}
	return b(cfg)
}

// Install wires the scenario into a driver. Pre-step snapshot hooks are
// registered when the config asks for double-buffering, and always when
// updates run in parallel, since parallel evaluation must read frozen
// peer state.
func (sc *Scenario) Install(s *sim.Simulator, cfg *config.Config) {
	for _, b := range sc.Bodies {
		s.AddBody(b)
	}
	if cfg.Snapshot || cfg.Workers > 1 {
		for _, p := range sc.PreSteps {
			s.AddPreStep(p)
		}
	}
	for _, m := range sc.Metrics {
		s.AddMetric(m)
	}
}

// makeBodies constructs the bodies with the configured integration mode
// and polar initial velocities.
func makeBodies(cfg *config.Config) ([]*body.Body, error) {
	mode, err := body.ModeFromString(cfg.Mode)
	if err != nil {
		return nil, err
	}

	bodies := make([]*body.Body, 0, len(cfg.Bodies))
	for i, bc := range cfg.Bodies {
		b, err := body.New(bc.X, bc.Y, bc.Radius, bc.Mass)
		if err != nil {
			return nil, fmt.Errorf("scenario: body %d: %w", i, err)
		}
		b.SetMode(mode)
		if bc.Speed != 0 {
			b.SetVelocity(polar.New(bc.Speed, polar.NewAngle(bc.Heading)))
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// withDrag wraps a force law with quadratic drag when configured.
func withDrag(cfg *config.Config, law body.ForceFunc) body.ForceFunc {
	if cfg.Drag == 0 {
		return law
	}
	return force.Sum(law, force.Drag(cfg.Drag))
}

func buildOrbit(cfg *config.Config) (*Scenario, error) {
	if len(cfg.Bodies) == 0 {
		return nil, fmt.Errorf("scenario: orbit needs at least one body")
	}

	bodies, err := makeBodies(cfg)
	if err != nil {
		return nil, err
	}

	law := force.OrbitalSoftened(cfg.Center.X, cfg.Center.Y, cfg.ForceMagnitude, cfg.Softening)
	for _, b := range bodies {
		b.SetForceFunc(withDrag(cfg, law))
	}

	r0 := math.Hypot(bodies[0].X()-cfg.Center.X, bodies[0].Y()-cfg.Center.Y)
	return &Scenario{
		Name:   "orbit",
		Bodies: bodies,
		Metrics: []sim.Metric{
			metrics.NewRadialDeviation(cfg.Center.X, cfg.Center.Y, r0),
		},
	}, nil
}

func buildThreeBody(cfg *config.Config) (*Scenario, error) {
	if len(cfg.Bodies) < 2 {
		return nil, fmt.Errorf("scenario: threebody needs at least two bodies")
	}

	bodies, err := makeBodies(cfg)
	if err != nil {
		return nil, err
	}

	grav := force.NewGravity(cfg.G, bodies...)
	grav.Softening = cfg.Softening
	for _, b := range bodies {
		b.SetForceFunc(withDrag(cfg, grav.Force))
	}

	return &Scenario{
		Name:     "threebody",
		Bodies:   bodies,
		PreSteps: []sim.PreStepper{grav},
		Metrics: []sim.Metric{
			metrics.NewMomentumDrift(),
			metrics.NewEnergyDrift(cfg.G, cfg.Softening),
		},
	}, nil
}

func buildSpring(cfg *config.Config) (*Scenario, error) {
	if len(cfg.Bodies) == 0 {
		return nil, fmt.Errorf("scenario: spring needs at least one body")
	}

	bodies, err := makeBodies(cfg)
	if err != nil {
		return nil, err
	}

	law := force.Harmonic(cfg.Center.X, cfg.Center.Y, cfg.SpringK)
	for _, b := range bodies {
		b.SetForceFunc(withDrag(cfg, law))
	}

	return &Scenario{Name: "spring", Bodies: bodies}, nil
}
