package scenario

import (
	"math"
	"testing"

	"github.com/CDE90/physics-simulation/internal/body"
	"github.com/CDE90/physics-simulation/internal/config"
	"github.com/CDE90/physics-simulation/internal/sim"
)

func TestBuildUnknownScenario(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scenario = "pendulum"

	if _, err := Build(cfg); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestBuildOrbitFromPreset(t *testing.T) {
	cfg := config.GetPreset("orbit", "circular")
	if cfg == nil {
		t.Fatal("missing orbit/circular preset")
	}

	sc, err := Build(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(sc.Bodies) != 1 {
		t.Fatalf("bodies = %d, want 1", len(sc.Bodies))
	}
	if len(sc.Metrics) != 1 {
		t.Fatalf("metrics = %d, want radial deviation", len(sc.Metrics))
	}

	b := sc.Bodies[0]
	if b.Mode() != body.ModeVerlet {
		t.Errorf("mode = %v, want verlet", b.Mode())
	}

	// Tangential launch speed sqrt(k/r) at r=200.
	wantSpeed := math.Sqrt(cfg.ForceMagnitude / 200)
	if math.Abs(b.Velocity().Magnitude-wantSpeed) > 1e-9 {
		t.Errorf("speed = %g, want %g", b.Velocity().Magnitude, wantSpeed)
	}

	// The installed force law must point toward the configured center.
	b.Update(1.0 / 60)
	if b.LastForce().IsZero() {
		t.Error("orbital force law not installed")
	}
}

func TestBuildThreeBodyWiring(t *testing.T) {
	cfg := config.GetPreset("threebody", "classic")
	if cfg == nil {
		t.Fatal("missing threebody/classic preset")
	}

	sc, err := Build(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(sc.Bodies) != 3 {
		t.Fatalf("bodies = %d, want 3", len(sc.Bodies))
	}
	if len(sc.PreSteps) != 1 {
		t.Fatalf("presteps = %d, want gravity snapshot hook", len(sc.PreSteps))
	}
	if len(sc.Metrics) != 2 {
		t.Fatalf("metrics = %d, want momentum and energy drift", len(sc.Metrics))
	}

	// The central mass starts at rest but must feel its satellites.
	sc.Bodies[0].Update(1.0 / 60)
	if sc.Bodies[0].LastForce().IsZero() {
		t.Error("gravitational force law not installed")
	}
}

func TestBuildSpringMode(t *testing.T) {
	cfg := config.GetPreset("spring", "bounce")
	if cfg == nil {
		t.Fatal("missing spring/bounce preset")
	}
	cfg.Mode = "basic"

	sc, err := Build(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if sc.Bodies[0].Mode() != body.ModeBasic {
		t.Errorf("mode = %v, want basic", sc.Bodies[0].Mode())
	}
}

func TestBuildRejectsInvalidMode(t *testing.T) {
	cfg := config.GetPreset("orbit", "circular")
	cfg.Mode = "rk4"

	if _, err := Build(cfg); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestInstallRegistersPreStepsOnlyWhenNeeded(t *testing.T) {
	cfg := config.GetPreset("threebody", "classic")

	build := func(snapshot bool, workers int) *sim.Simulator {
		c := *cfg
		c.Snapshot = snapshot
		c.Workers = workers

		sc, err := Build(&c)
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		s, err := sim.New(sim.Config{FPS: c.FPS, StepsPerFrame: c.StepsPerFrame, Duration: c.Duration, Workers: c.Workers})
		if err != nil {
			t.Fatalf("sim.New failed: %v", err)
		}
		sc.Install(s, &c)
		return s
	}

	if s := build(false, 0); len(s.Bodies()) != 3 {
		t.Errorf("bodies = %d, want 3", len(s.Bodies()))
	}

	// Snapshot and parallel configurations must step without error; the
	// live-read configuration is the sequential default.
	build(true, 0).StepFrame()
	build(false, 4).StepFrame()
}
