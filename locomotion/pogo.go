package locomotion

import "github.com/illdynamics/qommandah-qeen/physics"

// decidePogo bounces every tick that starts on the ground. Nothing suppresses
// the bounce. Holding jump at that moment adds the bonus once.
func (m *Machine) decidePogo(in Intent, b physics.BodySnapshot, p physics.Params) (physics.Drive, physics.Params) {
	t := m.tuning.Pogo
	p = controlled(p, t.Control)
	d := physics.Drive{MoveAxis: in.MoveAxis}

	if b.OnGround {
		vy := t.Bounce
		if in.JumpHeld {
			vy += t.Bonus
		}
		d.Launch = true
		d.LaunchVY = vy
		m.pogo.bounces++
	}
	return d, p
}

// pogoState: grounded is a landing, rising is a jump, anything else is the
// idle descent.
func (m *Machine) pogoState(b physics.BodySnapshot) SubState {
	switch {
	case b.OnGround:
		return PogoLand
	case b.Vel.Y < 0:
		return PogoJump
	}
	return PogoIdle
}

// PogoBounces counts bounces since Pogo was granted.
func (m *Machine) PogoBounces() int { return m.pogo.bounces }
