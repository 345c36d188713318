package field

import (
	"math"
	"time"

	"github.com/san-kum/ringfield/internal/geom"
)

// Squared angular speed below which the velocity integration step is skipped.
const angularVelocityEpsilonSq = 1e-4

// Segment is one rigid fragment of a fractured ring. It keeps the fragment's
// share of the original torus (an arc of the centerline), its rigid-body
// pose, and its gravity parameters. Segments are owned exclusively by a
// Coordinator; nothing else mutates them.
type Segment struct {
	ID           string
	ParentID     string
	FractureTime time.Time

	// Arc geometry, immutable once registered. ArcStart/ArcEnd are angular
	// bounds (radians) along the original ring; ArcEnd < ArcStart means the
	// arc wraps through the 0/2π seam.
	ArcStart   float64
	ArcEnd     float64
	RingRadius float64
	TubeRadius float64

	// Pose. Axis is the original ring's rotation axis, unit length; it
	// defines the plane of the arc's angular coordinate.
	Center          geom.Vec3
	Axis            geom.Vec3
	Rotation        float64
	RotationSpeed   float64
	AngularVelocity geom.Vec3

	Strength        float64
	InfluenceRadius float64

	Mass       float64
	VoxelCount int

	// Cached orientation, derived from Axis+Rotation when dirty and extended
	// in place by angular-velocity increments. Never authoritative.
	quat  geom.Quat
	dirty bool
	// spun records that an angular-velocity increment has ever been applied,
	// so the projection cannot take the unrotated fast path.
	spun bool
}

// Update advances the fragment's rotation state by dt seconds. The scalar
// spin about Axis and the free tumble from AngularVelocity are independent
// and may both apply in the same tick.
func (s *Segment) Update(dt float64) {
	if s.RotationSpeed != 0 {
		s.Rotation = geom.WrapAngle(s.Rotation + s.RotationSpeed*dt)
		s.dirty = true
	}

	if s.AngularVelocity.LengthSq() > angularVelocityEpsilonSq {
		speed := s.AngularVelocity.Length()
		inc := geom.AxisAngle(s.AngularVelocity.Scale(1/speed), speed*dt)
		// Left-compose: the increment acts in the segment's current frame.
		s.quat = s.Quaternion().Mul(inc)
		s.dirty = false
		s.spun = true
	}
}

// Quaternion returns the cached orientation, recomputing it from Axis and
// Rotation only when the cache is dirty.
func (s *Segment) Quaternion() geom.Quat {
	if s.dirty {
		s.quat = geom.AxisAngle(s.Axis, s.Rotation)
		s.dirty = false
	}
	return s.quat
}

func (s *Segment) InverseQuaternion() geom.Quat {
	return s.Quaternion().Conjugate()
}

// unrotated reports that the local frame coincides with the world frame, so
// the projection may skip both quaternion rotations. Purely an optimization.
func (s *Segment) unrotated() bool {
	return s.Rotation == 0 && !s.spun
}

// WithinInfluence is a conservative cull: true when point is close enough to
// Center that the segment's pull could possibly be non-zero. Not tight.
func (s *Segment) WithinInfluence(point geom.Vec3) bool {
	reach := s.RingRadius + s.TubeRadius + s.InfluenceRadius
	return point.Sub(s.Center).LengthSq() < reach*reach
}

// ArcLength is the centerline length of the fragment's arc. Bounds follow
// the registered convention: ArcEnd < ArcStart means the arc crosses the
// 0/2π seam, so the span wraps rather than reversing sign.
func (s *Segment) ArcLength() float64 {
	span := s.ArcEnd - s.ArcStart
	if span < 0 {
		span += 2 * math.Pi
	}
	return span * s.RingRadius
}

func (s *Segment) Volume() float64 {
	return s.ArcLength() * math.Pi * s.TubeRadius * s.TubeRadius
}
