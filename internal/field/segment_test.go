package field

import (
	"math"
	"testing"

	"github.com/san-kum/ringfield/internal/geom"
)

func TestUpdateScalarRotation(t *testing.T) {
	seg := quarterArc()
	seg.RotationSpeed = 1.0

	seg.Update(math.Pi)

	if math.Abs(seg.Rotation-math.Pi) > 1e-12 {
		t.Errorf("rotation = %f, expected pi", seg.Rotation)
	}

	want := geom.AxisAngle(seg.Axis, math.Pi)
	if math.Abs(math.Abs(seg.Quaternion().Dot(want))-1) > 1e-9 {
		t.Errorf("quaternion %v does not match half turn about axis", seg.Quaternion())
	}
}

func TestUpdateWrapsRotation(t *testing.T) {
	seg := quarterArc()
	seg.RotationSpeed = 1.0

	seg.Update(2*math.Pi + 0.5)

	if math.Abs(seg.Rotation-0.5) > 1e-9 {
		t.Errorf("rotation = %f, expected 0.5 after wrap", seg.Rotation)
	}
}

func TestUpdateAngularVelocity(t *testing.T) {
	seg := quarterArc()
	seg.AngularVelocity = geom.Vec3{X: 2.0}

	// Two half-second ticks integrate a full radian about +x.
	seg.Update(0.25)
	seg.Update(0.25)

	want := geom.AxisAngle(geom.Vec3{X: 1}, 1.0)
	if math.Abs(math.Abs(seg.Quaternion().Dot(want))-1) > 1e-9 {
		t.Errorf("quaternion %v, expected 1 rad about +x", seg.Quaternion())
	}
	if seg.unrotated() {
		t.Error("segment with applied angular velocity must not take the unrotated fast path")
	}
}

func TestUpdateNegligibleAngularVelocity(t *testing.T) {
	seg := quarterArc()
	seg.AngularVelocity = geom.Vec3{X: 1e-3}

	seg.Update(1.0)

	if seg.spun {
		t.Error("sub-epsilon angular velocity should not integrate")
	}
	if !seg.unrotated() {
		t.Error("segment should still qualify for the unrotated fast path")
	}
}

func TestWithinInfluence(t *testing.T) {
	seg := quarterArc() // reach = 1000 + 200 + 100

	if !seg.WithinInfluence(geom.Vec3{X: 1299}) {
		t.Error("point inside the reach bound should pass the cull")
	}
	if seg.WithinInfluence(geom.Vec3{X: 1301}) {
		t.Error("point outside the reach bound should be culled")
	}
}

func TestArcLengthAndVolume(t *testing.T) {
	seg := quarterArc()

	wantLen := math.Pi / 2 * 1000
	if math.Abs(seg.ArcLength()-wantLen) > 1e-9 {
		t.Errorf("arc length = %f, expected %f", seg.ArcLength(), wantLen)
	}

	wantVol := wantLen * math.Pi * 200 * 200
	if math.Abs(seg.Volume()-wantVol) > 1e-6 {
		t.Errorf("volume = %f, expected %f", seg.Volume(), wantVol)
	}
}

func TestArcLengthWrappedBounds(t *testing.T) {
	// Registration wraps a [3π/2, 2π] arc into (3π/2, 0); the length is
	// still a quarter circle, not the reversed three-quarter span.
	coord := NewCoordinator(Defaults{})
	seg, err := coord.Register("rim", SegmentConfig{
		ArcStart:   3 * math.Pi / 2,
		ArcEnd:     2 * math.Pi,
		RingRadius: 1000,
		TubeRadius: 200,
		Axis:       geom.Vec3{Y: 1},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	wantLen := math.Pi / 2 * 1000
	if math.Abs(seg.ArcLength()-wantLen) > 1e-9 {
		t.Errorf("seam-ending arc length = %f, expected %f", seg.ArcLength(), wantLen)
	}

	// An arc crossing the seam the other way: 300° through to 30°.
	cross := &Segment{ArcStart: 5 * math.Pi / 3, ArcEnd: math.Pi / 6, RingRadius: 1000, TubeRadius: 200}
	wantLen = math.Pi / 2 * 1000
	if math.Abs(cross.ArcLength()-wantLen) > 1e-9 {
		t.Errorf("seam-crossing arc length = %f, expected %f", cross.ArcLength(), wantLen)
	}

	wantVol := wantLen * math.Pi * 200 * 200
	if math.Abs(cross.Volume()-wantVol) > 1e-6 {
		t.Errorf("volume = %f, expected %f", cross.Volume(), wantVol)
	}
}

func TestQuaternionCacheFollowsRotation(t *testing.T) {
	seg := quarterArc()
	seg.RotationSpeed = 0.5

	q0 := seg.Quaternion()
	seg.Update(1.0)
	q1 := seg.Quaternion()

	if math.Abs(math.Abs(q0.Dot(q1))-1) < 1e-9 {
		t.Error("quaternion cache did not refresh after rotation changed")
	}
	want := geom.AxisAngle(seg.Axis, 0.5)
	if math.Abs(math.Abs(q1.Dot(want))-1) > 1e-9 {
		t.Errorf("refreshed quaternion %v, expected 0.5 rad about axis", q1)
	}
}
