package probe

import "github.com/san-kum/ringfield/internal/geom"

// Euler is first-order explicit integration.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Step(f Sampler, s State, dt float64) State {
	a := f.GravityAt(s.Position).Acceleration
	return State{
		Position: s.Position.Add(s.Velocity.Scale(dt)),
		Velocity: s.Velocity.Add(a.Scale(dt)),
	}
}

// RK4 is classical fourth-order Runge-Kutta over the probe's
// position/velocity state, sampling the field at the intermediate points.
type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

type deriv struct {
	dp geom.Vec3 // velocity
	dv geom.Vec3 // acceleration
}

func (r *RK4) eval(f Sampler, s State, d deriv, dt float64) deriv {
	mid := State{
		Position: s.Position.Add(d.dp.Scale(dt)),
		Velocity: s.Velocity.Add(d.dv.Scale(dt)),
	}
	return deriv{
		dp: mid.Velocity,
		dv: f.GravityAt(mid.Position).Acceleration,
	}
}

func (r *RK4) Step(f Sampler, s State, dt float64) State {
	k1 := r.eval(f, s, deriv{}, 0)
	k2 := r.eval(f, s, k1, dt*0.5)
	k3 := r.eval(f, s, k2, dt*0.5)
	k4 := r.eval(f, s, k3, dt)

	dp := k1.dp.Add(k2.dp.Scale(2)).Add(k3.dp.Scale(2)).Add(k4.dp).Scale(dt / 6)
	dv := k1.dv.Add(k2.dv.Scale(2)).Add(k3.dv.Scale(2)).Add(k4.dv).Scale(dt / 6)

	return State{
		Position: s.Position.Add(dp),
		Velocity: s.Velocity.Add(dv),
	}
}

// NewIntegrator resolves an integrator by name; unknown names fall back to
// RK4.
func NewIntegrator(name string) Integrator {
	if name == "euler" {
		return NewEuler()
	}
	return NewRK4()
}
