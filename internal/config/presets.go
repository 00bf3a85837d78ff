package config

import "math"

// Presets carry the canonical demonstration setups, keyed by scenario then
// preset name. The orbit and threebody numbers assume a 1200x800 pixel
// world centered at (600, 400).
var Presets = map[string]map[string]*Config{
	"orbit": {
		// Circular orbit: tangential speed sqrt(k/r) at radius 200.
		"circular": {
			Scenario: "orbit", Mode: "verlet",
			FPS: 60, StepsPerFrame: 8, Duration: 40,
			G: DefaultG, Softening: DefaultSoftening,
			Center:         CenterConfig{X: 600, Y: 400},
			ForceMagnitude: 200000,
			Bodies: []BodyConfig{
				{X: 800, Y: 400, Radius: 20, Mass: 1, Speed: math.Sqrt(200000.0 / 200.0), Heading: 90},
			},
		},
		// Elliptical orbit: launched below circular speed.
		"elliptic": {
			Scenario: "orbit", Mode: "verlet",
			FPS: 60, StepsPerFrame: 8, Duration: 60,
			G: DefaultG, Softening: DefaultSoftening,
			Center:         CenterConfig{X: 600, Y: 400},
			ForceMagnitude: 200000,
			Bodies: []BodyConfig{
				{X: 800, Y: 400, Radius: 20, Mass: 1, Speed: 24, Heading: 90},
			},
		},
	},
	"threebody": {
		"classic": {
			Scenario: "threebody", Mode: "verlet",
			FPS: 60, StepsPerFrame: 16, Duration: 30,
			G: DefaultG, Softening: DefaultSoftening,
			Bodies: []BodyConfig{
				{X: 600, Y: 400, Radius: 20, Mass: 500},
				{X: 800, Y: 600, Radius: 15, Mass: 50, Speed: 30, Heading: 90},
				{X: 400, Y: 200, Radius: 10, Mass: 30, Speed: 25, Heading: 315},
			},
		},
		"parallel": {
			Scenario: "threebody", Mode: "verlet",
			FPS: 60, StepsPerFrame: 16, Duration: 30, Workers: 4,
			G: DefaultG, Softening: DefaultSoftening,
			Bodies: []BodyConfig{
				{X: 600, Y: 400, Radius: 20, Mass: 500},
				{X: 800, Y: 600, Radius: 15, Mass: 50, Speed: 30, Heading: 90},
				{X: 400, Y: 200, Radius: 10, Mass: 30, Speed: 25, Heading: 315},
			},
		},
	},
	"spring": {
		"bounce": {
			Scenario: "spring", Mode: "verlet",
			FPS: 60, StepsPerFrame: 8, Duration: 20,
			G: DefaultG, Softening: DefaultSoftening,
			Center:  CenterConfig{X: 600, Y: 400},
			SpringK: 5,
			Bodies: []BodyConfig{
				{X: 800, Y: 400, Radius: 20, Mass: 1},
			},
		},
		"damped": {
			Scenario: "spring", Mode: "verlet",
			FPS: 60, StepsPerFrame: 8, Duration: 30,
			G: DefaultG, Softening: DefaultSoftening,
			Center:  CenterConfig{X: 600, Y: 400},
			SpringK: 5,
			Drag:    0.01,
			Bodies: []BodyConfig{
				{X: 800, Y: 400, Radius: 20, Mass: 1},
			},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
// Callers layer flag and file overrides on top, so the stored preset must
// stay untouched.
func GetPreset(scenario, name string) *Config {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	p, ok := group[name]
	if !ok {
		return nil
	}

	c := *p
	c.Bodies = append([]BodyConfig(nil), p.Bodies...)
	return &c
}

// ListPresets returns the preset names for a scenario, or nil when unknown.
func ListPresets(scenario string) []string {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
