package locomotion

import "github.com/illdynamics/qommandah-qeen/physics"

func (m *Machine) decideNormal(in Intent, b physics.BodySnapshot, p physics.Params) (physics.Drive, physics.Params) {
	d := physics.Drive{MoveAxis: in.MoveAxis}
	if in.JumpPressed && b.OnGround {
		d.Launch = true
		d.LaunchVY = -m.tuning.JumpStrength
	}
	return d, p
}

func (m *Machine) normalState(b physics.BodySnapshot) SubState {
	switch {
	case m.hurt > 0:
		return Hurt
	case b.OnGround && b.Vel.X != 0:
		return Run
	case b.OnGround:
		return Idle
	case b.Vel.Y > 0:
		return Fall
	}
	return Jump
}
