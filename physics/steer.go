package physics

import "github.com/illdynamics/qommandah-qeen/subpixel"

// Steering is the decision a think function makes for one tick. It carries no
// physics of its own; Step turns it into forces.
type Steering struct {
	MoveAxis int
	Jump     bool
}

// View is what a think function may look at when deciding.
type View struct {
	Tick      uint64
	Body      BodySnapshot
	Contacts  Contacts
	Target    Vec
	HasTarget bool
}

// Steerable is the capability every AI-driven body shares: it supplies
// decisions only and relies on Step for integration and collision.
type Steerable interface {
	Steer(v View) Steering
}

// SteerFunc adapts a plain function to Steerable.
type SteerFunc func(v View) Steering

func (f SteerFunc) Steer(v View) Steering { return f(v) }

// Drive converts a steering decision into integrator forces. A jump only
// launches when the body is standing on something.
func (s Steering) Drive(b *Body, jumpStrength subpixel.Units) Drive {
	d := Drive{MoveAxis: axis(s.MoveAxis)}
	if s.Jump && b.OnGround && jumpStrength > 0 {
		d.Launch = true
		d.LaunchVY = -jumpStrength
	}
	return d
}

// StepResult reports one integrate+resolve pass.
type StepResult struct {
	// Integrated is the velocity after Integrate and before collision.
	Integrated Vec
	Predicted  Vec
	Contacts   Contacts
	// Landed is true when the body was airborne before and grounded after.
	Landed bool
}

// Step runs the Integrator and then the TileCollisionResolver for one body
// and commits the result.
func Step(g *Grid, b *Body, p Params, d Drive) StepResult {
	wasGrounded := b.OnGround
	predicted := Integrate(b, p, d)
	out := StepResult{Integrated: b.Vel, Predicted: predicted}
	res := Resolve(g, b, predicted)
	b.Apply(res)
	out.Contacts = res.Contacts
	out.Landed = !wasGrounded && b.OnGround
	return out
}
