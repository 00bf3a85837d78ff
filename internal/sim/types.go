package sim

import (
	"fmt"

	"github.com/CDE90/physics-simulation/internal/body"
)

// BodyState is a read-only Cartesian snapshot of one body, handed to frame
// observers (renderers, telemetry streams) after a completed frame.
type BodyState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Speed   float64 `json:"speed"`
	Heading float64 `json:"heading"`
	Force   float64 `json:"force"`
	Mass    float64 `json:"mass"`
	Radius  float64 `json:"radius"`
}

// Frame is the per-frame hand-off to rendering collaborators.
type Frame struct {
	Index  int         `json:"frame"`
	Time   float64     `json:"time"`
	Bodies []BodyState `json:"bodies"`
}

// FrameObserver consumes completed frames. Observers never feed anything
// back into the core.
type FrameObserver interface {
	OnFrame(f Frame)
}

// FrameObserverFunc adapts a function to the FrameObserver interface.
type FrameObserverFunc func(f Frame)

func (fn FrameObserverFunc) OnFrame(f Frame) { fn(f) }

// Metric accumulates a scalar diagnostic over a run, sampled once per frame.
type Metric interface {
	Name() string
	Observe(bodies []*body.Body, t float64)
	Value() float64
	Reset()
}

// PreStepper is notified at the start of every physics sub-step, before the
// first body updates. Force laws that snapshot peer state implement it.
type PreStepper interface {
	BeginStep()
}

// Config fixes the time base for a run. The sub-step dt is 1/FPS; each
// rendered frame advances StepsPerFrame sub-steps of simulated time.
type Config struct {
	FPS           int
	StepsPerFrame int
	Duration      float64 // seconds of frame time (Duration·FPS frames)
	Workers       int     // >1 updates bodies concurrently within a sub-step
	Record        bool    // capture every frame into the Result
}

// DefaultConfig mirrors the standard orbital demonstration setup.
func DefaultConfig() Config {
	return Config{
		FPS:           60,
		StepsPerFrame: 8,
		Duration:      10,
	}
}

func (c Config) validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("sim: fps must be positive, got %d", c.FPS)
	}
	if c.StepsPerFrame <= 0 {
		return fmt.Errorf("sim: steps per frame must be positive, got %d", c.StepsPerFrame)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %g", c.Duration)
	}
	return nil
}

// Result collects what a run produced.
type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
}
