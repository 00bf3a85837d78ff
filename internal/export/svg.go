// Package export renders stored run trajectories as SVG images.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CDE90/physics-simulation/internal/sim"
)

var ErrNoFrames = errors.New("export: no frames to render")

// palette cycles across bodies. Dark background, bright strokes.
var palette = []string{"#00ff88", "#ff8800", "#4488ff", "#ff44aa", "#ffee00", "#00ddff"}

// TrajectoriesSVG draws each body's path over the run as a polyline,
// all bodies sharing a single world-to-image mapping so relative
// geometry is preserved. The y axis is flipped so larger world y is up.
func TrajectoriesSVG(frames []sim.Frame, width, height int) (string, error) {
	if len(frames) < 2 || len(frames[0].Bodies) == 0 {
		return "", ErrNoFrames
	}
	nBodies := len(frames[0].Bodies)

	minX, maxX := frames[0].Bodies[0].X, frames[0].Bodies[0].X
	minY, maxY := frames[0].Bodies[0].Y, frames[0].Bodies[0].Y
	for _, f := range frames {
		for _, b := range f.Bodies {
			if b.X < minX {
				minX = b.X
			}
			if b.X > maxX {
				maxX = b.X
			}
			if b.Y < minY {
				minY = b.Y
			}
			if b.Y > maxY {
				maxY = b.Y
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	toImage := func(x, y float64) (float64, float64) {
		ix := (x - minX) / rangeX * float64(width)
		iy := float64(height) - (y-minY)/rangeY*float64(height)
		return ix, iy
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for bi := 0; bi < nBodies; bi++ {
		color := palette[bi%len(palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, color))
		for i, f := range frames {
			x, y := toImage(f.Bodies[bi].X, f.Bodies[bi].Y)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		// Mark the final position.
		last := frames[len(frames)-1].Bodies[bi]
		x, y := toImage(last.X, last.Y)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, color))
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}
