// Package field computes directional gravity for a ring-shaped structure
// that has fractured into independently moving arc fragments.
//
// Each [Segment] keeps one fragment's arc of the original torus centerline
// together with its rigid-body pose and gravity parameters. A [Coordinator]
// owns the segment collection, advances every fragment's rotation each tick,
// and answers point queries:
//
//	coord := field.NewCoordinator(field.Defaults{Curve: field.Smoothstep})
//	coord.Register("ring-a", field.SegmentConfig{ ... })
//	coord.Update(dt)
//	g := coord.GravityAt(pos)
//
// Where several fragments' influence zones overlap, their pulls are blended
// by influence-derived weights so an object crossing a fracture boundary
// sees continuous acceleration. Gravity pulls toward the nearest point on a
// fragment's centerline, at full strength on and inside the tube surface,
// decaying to zero at the influence radius.
package field
