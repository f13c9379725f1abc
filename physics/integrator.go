package physics

import "github.com/illdynamics/qommandah-qeen/subpixel"

// Integrate advances b's velocity by one tick and returns the predicted
// position pos+vel. The body's position is left untouched; Resolve decides
// where it actually ends up.
func Integrate(b *Body, p Params, d Drive) Vec {
	vy := b.Vel.Y
	if d.Launch {
		vy = d.LaunchVY
	} else {
		vy += p.Gravity
	}
	b.Vel.Y = subpixel.Clamp(vy, -p.TerminalUp, p.TerminalDown)

	switch {
	case d.Shove:
		b.Vel.X = d.ShoveVX
	case d.MoveAxis != 0:
		target := subpixel.Units(axis(d.MoveAxis)) * p.MaxRunSpeed
		b.Vel.X = subpixel.Approach(b.Vel.X, target, p.Accel)
	default:
		b.Vel.X = subpixel.Approach(b.Vel.X, 0, p.Friction)
	}

	return b.Pos.Add(b.Vel)
}

func axis(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
