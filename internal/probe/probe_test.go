package probe

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/ringfield/internal/field"
	"github.com/san-kum/ringfield/internal/geom"
)

// uniformField pulls straight down with constant magnitude everywhere.
type uniformField struct{ g float64 }

func (u uniformField) GravityAt(geom.Vec3) field.Sample {
	return field.Sample{
		Acceleration: geom.Vec3{Y: -u.g},
		Up:           geom.Vec3{Y: 1},
		Influence:    1,
	}
}

func TestEulerUniformFall(t *testing.T) {
	f := uniformField{g: 9.8}
	integ := NewEuler()

	s := State{Position: geom.Vec3{Y: 100}}
	dt := 0.001
	for i := 0; i < 1000; i++ {
		s = integ.Step(f, s, dt)
	}

	// After 1s: y = 100 - g/2, vy = -g.
	if math.Abs(s.Position.Y-(100-4.9)) > 0.1 {
		t.Errorf("y = %f, expected ~95.1", s.Position.Y)
	}
	if math.Abs(s.Velocity.Y-(-9.8)) > 1e-6 {
		t.Errorf("vy = %f, expected -9.8", s.Velocity.Y)
	}
}

func TestRK4UniformFall(t *testing.T) {
	f := uniformField{g: 9.8}
	integ := NewRK4()

	s := State{Position: geom.Vec3{Y: 100}}
	for i := 0; i < 100; i++ {
		s = integ.Step(f, s, 0.01)
	}

	// RK4 is exact for constant acceleration.
	if math.Abs(s.Position.Y-(100-4.9)) > 1e-9 {
		t.Errorf("y = %f, expected 95.1", s.Position.Y)
	}
	if math.Abs(s.Velocity.Y-(-9.8)) > 1e-9 {
		t.Errorf("vy = %f, expected -9.8", s.Velocity.Y)
	}
}

func TestRunRecordsTrajectory(t *testing.T) {
	coord := field.NewCoordinator(field.Defaults{})
	_, err := coord.Register("ring", field.SegmentConfig{
		ArcStart:        0,
		ArcEnd:          2 * math.Pi,
		RingRadius:      1000,
		TubeRadius:      100,
		Axis:            geom.Vec3{Y: 1},
		Strength:        9.8,
		InfluenceRadius: 200,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := Run(context.Background(), coord, NewRK4(),
		State{Position: geom.Vec3{X: 1150}},
		Config{Dt: 0.05, Duration: 1.0})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(res.Steps) != 21 {
		t.Fatalf("expected 21 recorded steps, got %d", len(res.Steps))
	}
	first := res.Steps[0]
	if first.Dominant != "ring" || first.GMag == 0 {
		t.Errorf("first step should feel the ring: %+v", first)
	}
	for _, st := range res.Steps {
		if !st.State.Position.IsValid() || !st.State.Velocity.IsValid() {
			t.Fatalf("non-finite probe state at t=%f", st.Time)
		}
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	coord := field.NewCoordinator(field.Defaults{})
	if _, err := Run(context.Background(), coord, NewEuler(), State{}, Config{Dt: 0, Duration: 1}); err == nil {
		t.Error("expected error for zero dt")
	}
	if _, err := Run(context.Background(), coord, NewEuler(), State{}, Config{Dt: 0.01, Duration: 0}); err == nil {
		t.Error("expected error for zero duration")
	}
}
