package field

import (
	"math"

	"github.com/san-kum/ringfield/internal/geom"
)

// Contribution is one segment's pull at a query point, computed by Project.
// Direction is a world-space unit vector toward the nearest centerline
// point; Strength already embeds the influence factor.
type Contribution struct {
	Direction           geom.Vec3
	Strength            float64
	Influence           float64
	DistanceFromSurface float64
	OnArc               bool
}

// normalizeArc maps arc bounds onto the convention the projection clamps
// against: a span of 2π or more becomes the full circle [0, 2π]; anything
// shorter has both bounds wrapped into [0, 2π), with end < start marking an
// arc that crosses the 0/2π seam.
func normalizeArc(start, end float64) (float64, float64) {
	if math.Abs(end-start) >= 2*math.Pi {
		return 0, 2 * math.Pi
	}
	return geom.WrapAngle(start), geom.WrapAngle(end)
}

// planeBasis returns two unit vectors spanning the plane perpendicular to
// axis. The choice is arbitrary but deterministic: angle zero lies along the
// world x axis whenever the axis permits it.
func planeBasis(axis geom.Vec3) (u, v geom.Vec3) {
	ref := geom.Vec3{X: 1}
	if math.Abs(axis.Dot(ref)) > 0.9 {
		ref = geom.Vec3{Z: 1}
	}
	u = ref.Sub(axis.Scale(ref.Dot(axis))).Normalize()
	v = axis.Cross(u)
	return u, v
}

// clampToArc snaps an angular coordinate into the segment's arc.
// Both bounds orderings are handled: start ≤ end is a plain interval, while
// end < start wraps through the 0/2π seam. Angles outside the arc snap to
// whichever endpoint is closer by shortest angular distance. The second
// return reports whether the original angle was already on the arc.
func clampToArc(angle, start, end float64) (float64, bool) {
	a := geom.WrapAngle(angle)

	var inside bool
	if end >= start {
		inside = a >= start && a <= end
	} else {
		inside = a >= start || a <= end
	}
	if inside {
		return a, true
	}

	dStart := math.Abs(geom.WrapSigned(a - start))
	dEnd := math.Abs(geom.WrapSigned(a - end))
	if dStart <= dEnd {
		return start, false
	}
	return end, false
}

// Project computes seg's gravity contribution at a world-space point: the
// nearest point on the arc centerline, the pull direction toward it, and the
// influence of the falloff curve at that distance. Pure geometry, no
// mutation beyond the segment's lazy quaternion cache.
func Project(seg *Segment, point geom.Vec3, curve Falloff) Contribution {
	local := point.Sub(seg.Center)
	rotated := !seg.unrotated()
	if rotated {
		local = seg.InverseQuaternion().Rotate(local)
	}

	axial := local.Dot(seg.Axis)
	radial := local.Sub(seg.Axis.Scale(axial))

	u, v := planeBasis(seg.Axis)

	var angle float64
	if radial.LengthSq() < 1e-12 {
		// On the axis the angular coordinate is undefined; use the arc start
		// so the result is deterministic.
		angle = seg.ArcStart
	} else {
		angle = math.Atan2(radial.Dot(v), radial.Dot(u))
	}

	clamped, onArc := clampToArc(angle, seg.ArcStart, seg.ArcEnd)

	sin, cos := math.Sincos(clamped)
	nearest := u.Scale(cos * seg.RingRadius).
		Add(v.Scale(sin * seg.RingRadius)).
		Add(seg.Axis.Scale(axial))

	toCenterline := nearest.Sub(local)
	distance := toCenterline.Length()
	surface := distance - seg.TubeRadius

	dir := toCenterline.Normalize()
	if rotated {
		dir = seg.Quaternion().Rotate(dir)
	}

	inf := Influence(surface, seg.InfluenceRadius, curve)

	return Contribution{
		Direction:           dir,
		Strength:            seg.Strength * inf,
		Influence:           inf,
		DistanceFromSurface: surface,
		OnArc:               onArc,
	}
}
