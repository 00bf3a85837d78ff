// Package telemetry holds the read-only consumers of body state: trail
// capture for recent positions and a websocket hub that streams frames to
// external renderers. Nothing here feeds back into the physics core.
package telemetry

import (
	"github.com/CDE90/physics-simulation/internal/body"
)

// Point is a captured Cartesian position.
type Point struct {
	X, Y float64
}

// Trail records a bounded history of a body's positions, appended once per
// completed update. It is pure data; drawing is someone else's problem.
type Trail struct {
	points []Point
	max    int
}

// NewTrail makes a trail keeping at most max points.
func NewTrail(max int) *Trail {
	if max < 1 {
		max = 1
	}
	return &Trail{max: max}
}

// Attach registers the trail as an update observer on b.
func (t *Trail) Attach(b *body.Body) {
	b.AddObserver(t.record)
}

func (t *Trail) record(b *body.Body) {
	t.points = append(t.points, Point{X: b.X(), Y: b.Y()})
	if len(t.points) > t.max {
		t.points = t.points[1:]
	}
}

// Points returns the recorded positions, oldest first. The returned slice
// is the trail's backing store; callers must not retain it across updates.
func (t *Trail) Points() []Point {
	return t.points
}

// Len reports how many points are currently held.
func (t *Trail) Len() int { return len(t.points) }
