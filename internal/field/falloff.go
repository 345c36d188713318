package field

import (
	"fmt"

	"github.com/san-kum/ringfield/internal/geom"
)

// Falloff selects the shape of the influence decay between the tube surface
// and the influence radius.
type Falloff int

const (
	Linear Falloff = iota
	Quadratic
	Cubic
	Smoothstep
)

func (f Falloff) String() string {
	switch f {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	case Cubic:
		return "cubic"
	case Smoothstep:
		return "smoothstep"
	}
	return "unknown"
}

func ParseFalloff(name string) (Falloff, error) {
	switch name {
	case "", "linear":
		return Linear, nil
	case "quadratic":
		return Quadratic, nil
	case "cubic":
		return Cubic, nil
	case "smoothstep":
		return Smoothstep, nil
	}
	return Linear, fmt.Errorf("field: unknown falloff curve %q", name)
}

// Shape evaluates the curve on [0,1]; every curve maps 0→0 and 1→1 and is
// monotonically non-decreasing.
func (f Falloff) Shape(t float64) float64 {
	switch f {
	case Quadratic:
		return t * t
	case Cubic:
		return t * t * t
	case Smoothstep:
		return t * t * (3 - 2*t)
	default:
		return t
	}
}

// Influence maps a distance above the tube surface to [0,1]. Points at or
// inside the surface (distance ≤ 0) get full influence; it decays to zero at
// the influence radius.
func Influence(distanceFromSurface, influenceRadius float64, curve Falloff) float64 {
	if influenceRadius <= 0 || distanceFromSurface >= influenceRadius {
		return 0
	}
	t := geom.Clamp(distanceFromSurface, 0, influenceRadius) / influenceRadius
	return curve.Shape(1 - t)
}
