// Package probe drops a test particle through a gravity field and records
// its trajectory. The particle is massless with respect to the field: it
// samples gravity but never disturbs it.
package probe

import (
	"context"
	"fmt"

	"github.com/san-kum/ringfield/internal/field"
	"github.com/san-kum/ringfield/internal/geom"
)

// Sampler answers point gravity queries. *field.Coordinator satisfies it.
type Sampler interface {
	GravityAt(p geom.Vec3) field.Sample
}

// State is a probe's kinematic state.
type State struct {
	Position geom.Vec3
	Velocity geom.Vec3
}

// Integrator advances a probe state through a sampled field by one step.
type Integrator interface {
	Step(f Sampler, s State, dt float64) State
}

// Config controls a probe run.
type Config struct {
	Dt       float64
	Duration float64
}

// Step holds one recorded trajectory sample.
type Step struct {
	Time     float64
	State    State
	Gravity  field.Sample
	Speed    float64
	GMag     float64
	Dominant string
}

// Result is a completed probe run.
type Result struct {
	Steps []Step
}

// Run integrates a probe through f, ticking the coordinator and the probe in
// lockstep, and records every step.
func Run(ctx context.Context, coord *field.Coordinator, integ Integrator, s0 State, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("probe: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("probe: duration must be positive, got %f", cfg.Duration)
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{Steps: make([]Step, 0, steps+1)}

	s := s0
	t := 0.0
	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		g := coord.GravityAt(s.Position)
		result.Steps = append(result.Steps, Step{
			Time:     t,
			State:    s,
			Gravity:  g,
			Speed:    s.Velocity.Length(),
			GMag:     g.Acceleration.Length(),
			Dominant: g.Dominant,
		})

		if i == steps {
			break
		}
		s = integ.Step(coord, s, cfg.Dt)
		coord.Update(cfg.Dt)
		t += cfg.Dt
	}

	return result, nil
}
