package locomotion

import (
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// decideJetpack burns fuel while thrust is held and regenerates it on the
// ground once thrust is released and GroundedDelay ticks have passed since the
// last burn. It also picks the tick's gravity: upward thrust, reduced hover
// gravity, or full gravity when out of fuel.
//
// A dash overrides all of that for DashTicks ticks: horizontal speed is
// pinned to DashSpeed, gravity is suspended and fuel burns at DashBurn.
func (m *Machine) decideJetpack(in Intent, b physics.BodySnapshot, p physics.Params) (physics.Drive, physics.Params) {
	t := m.tuning.Jetpack
	j := &m.jet
	p = controlled(p, t.Control)
	d := physics.Drive{MoveAxis: in.MoveAxis}

	if in.DashPressed && m.canDash() {
		j.dash = t.DashTicks
		j.dashCooldown = t.DashCooldown
		j.dashDir = in.MoveAxis
		if j.dashDir == 0 {
			j.dashDir = m.facing
		}
	}
	j.dashing = j.dash > 0
	if j.dashing {
		j.dash--
		j.thrusting = false
		j.fuel = max(j.fuel-t.DashBurn, 0)
		j.sinceThrust = 0
		p.Gravity = 0
		d.Shove = true
		d.ShoveVX = subpixel.Units(j.dashDir) * t.DashSpeed
		return d, p
	}

	j.thrusting = in.JumpHeld && j.fuel > 0
	switch {
	case j.thrusting:
		j.fuel = max(j.fuel-t.Burn, 0)
		j.sinceThrust = 0
		p.Gravity = -t.ThrustAccel
	case j.fuel == 0:
		// Out of fuel: full gravity until the ground is reached.
	case !b.OnGround:
		p.Gravity = t.HoverGravity.Apply(p.Gravity)
	}

	if !j.thrusting {
		if j.sinceThrust < t.GroundedDelay {
			j.sinceThrust++
		}
		if b.OnGround && !in.JumpHeld && j.sinceThrust >= t.GroundedDelay {
			j.fuel = min(j.fuel+t.Regen, t.MaxFuel)
		}
	}
	return d, p
}

// canDash needs no dash in progress, an elapsed cooldown and strictly more
// than DashMinFuel of the tank.
func (m *Machine) canDash() bool {
	t := m.tuning.Jetpack
	j := m.jet
	return t.DashTicks > 0 && j.dash == 0 && j.dashCooldown == 0 &&
		j.fuel > int(t.DashMinFuel.Apply(subpixel.Units(t.MaxFuel)))
}

func (m *Machine) jetpackState(b physics.BodySnapshot) SubState {
	switch {
	case m.jet.dashing:
		return JetpackDash
	case m.jet.thrusting:
		return JetpackThrust
	case b.OnGround:
		return JetpackIdle
	case m.jet.fuel == 0:
		return JetpackFall
	}
	return JetpackHover
}
