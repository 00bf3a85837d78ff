// Package sim is the fixed-timestep driver. It owns the body collection and
// the force-law wiring, advances every body StepsPerFrame times per rendered
// frame with a fixed dt, and hands the resulting state to frame observers.
// The driver knows nothing about rendering; observers are the boundary.
package sim

import (
	"context"
	"sync"

	"github.com/CDE90/physics-simulation/internal/body"
)

// Simulator runs bodies forward in fixed sub-steps. Not safe for concurrent
// use; a run is single-threaded unless Workers is set, and even then writes
// stay confined to each body's own goroutine against frozen peer state.
type Simulator struct {
	cfg Config
	dt  float64

	bodies    []*body.Body
	preSteps  []PreStepper
	metrics   []Metric
	observers []FrameObserver

	frame int
	time  float64
}

// New builds a driver from a validated config. The sub-step dt is fixed at
// 1/FPS for the lifetime of the simulator.
func New(cfg Config) (*Simulator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		cfg: cfg,
		dt:  1.0 / float64(cfg.FPS),
	}, nil
}

func (s *Simulator) AddBody(b *body.Body)        { s.bodies = append(s.bodies, b) }
func (s *Simulator) AddPreStep(p PreStepper)     { s.preSteps = append(s.preSteps, p) }
func (s *Simulator) AddMetric(m Metric)          { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o FrameObserver) { s.observers = append(s.observers, o) }

func (s *Simulator) Bodies() []*body.Body { return s.bodies }
func (s *Simulator) Dt() float64          { return s.dt }
func (s *Simulator) Time() float64        { return s.time }

// StepFrame advances one rendered frame: StepsPerFrame sub-steps for every
// body, then metrics and frame observers. Bodies update in insertion order
// within a sub-step unless Workers > 1.
func (s *Simulator) StepFrame() Frame {
	for i := 0; i < s.cfg.StepsPerFrame; i++ {
		s.subStep()
	}

	s.frame++
	s.time += s.dt * float64(s.cfg.StepsPerFrame)

	for _, m := range s.metrics {
		m.Observe(s.bodies, s.time)
	}

	f := s.snapshot()
	for _, o := range s.observers {
		o.OnFrame(f)
	}
	return f
}

func (s *Simulator) subStep() {
	for _, p := range s.preSteps {
		p.BeginStep()
	}

	if s.cfg.Workers > 1 && len(s.bodies) > 1 {
		s.subStepParallel()
		return
	}

	for _, b := range s.bodies {
		b.Update(s.dt)
	}
}

// subStepParallel updates bodies concurrently. Correct only when every
// shared force law has been registered as a PreStepper, so that force
// evaluation reads a frozen snapshot of peer positions and each goroutine
// writes nothing but its own body.
func (s *Simulator) subStepParallel() {
	workers := s.cfg.Workers
	if workers > len(s.bodies) {
		workers = len(s.bodies)
	}

	var wg sync.WaitGroup
	chunk := (len(s.bodies) + workers - 1) / workers

	for start := 0; start < len(s.bodies); start += chunk {
		end := start + chunk
		if end > len(s.bodies) {
			end = len(s.bodies)
		}

		wg.Add(1)
		go func(bodies []*body.Body) {
			defer wg.Done()
			for _, b := range bodies {
				b.Update(s.dt)
			}
		}(s.bodies[start:end])
	}

	wg.Wait()
}

// Run drives frames until the configured duration elapses or the context is
// canceled. Cancellation is checked at frame granularity; a sub-step always
// runs to completion.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	frames := int(s.cfg.Duration * float64(s.cfg.FPS))
	result := &Result{
		Metrics: make(map[string]float64),
	}
	if s.cfg.Record {
		result.Frames = make([]Frame, 0, frames)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			s.collectMetrics(result)
			return result, ctx.Err()
		default:
		}

		f := s.StepFrame()
		result.StepsTaken += s.cfg.StepsPerFrame
		if s.cfg.Record {
			result.Frames = append(result.Frames, f)
		}
	}

	s.collectMetrics(result)
	return result, nil
}

func (s *Simulator) collectMetrics(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) snapshot() Frame {
	states := make([]BodyState, len(s.bodies))
	for i, b := range s.bodies {
		v := b.Velocity()
		states[i] = BodyState{
			X:       b.X(),
			Y:       b.Y(),
			VX:      v.X(),
			VY:      v.Y(),
			Speed:   v.Magnitude,
			Heading: v.Angle.Degrees(),
			Force:   b.LastForce().Magnitude,
			Mass:    b.Mass(),
			Radius:  b.Radius(),
		}
	}
	return Frame{Index: s.frame, Time: s.time, Bodies: states}
}
