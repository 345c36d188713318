// Package export renders recorded probe trajectories as standalone SVG.
package export

import (
	"fmt"
	"strings"
)

// Point is one trajectory sample projected into the ring plane.
type Point struct {
	X, Y float64
}

// TrajectorySVG draws a polyline through the points, auto-fitted to the
// viewport with a small margin. Returns "" when there is nothing to draw.
func TrajectorySVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	const margin = 20.0
	sx := (float64(width) - 2*margin) / spanX
	sy := (float64(height) - 2*margin) / spanY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<polyline fill="none" stroke="%s" stroke-width="1.5" points="`,
		width, height, strokeColor))

	for i, p := range points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		px := margin + (p.X-minX)*sx
		// SVG y grows downward.
		py := float64(height) - margin - (p.Y-minY)*sy
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
