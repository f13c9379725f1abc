// Package render turns committed simulation state into float draw
// coordinates. Nothing here writes back into the simulation.
package render

import (
	"github.com/jakecoffman/cp"

	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

const unitsPerPixel = float64(subpixel.Scale)

// Pixels converts subpixel units to fractional pixels.
func Pixels(u subpixel.Units) float64 {
	return float64(u) / unitsPerPixel
}

func Point(v physics.Vec) cp.Vector {
	return cp.Vector{X: Pixels(v.X), Y: Pixels(v.Y)}
}

// Box is a body's box in pixels. Y grows downward, so B is the top edge and
// T the bottom one, matching screen space.
func Box(b physics.BodySnapshot) cp.BB {
	p := Point(b.Pos)
	return cp.BB{L: p.X, B: p.Y, R: p.X + Pixels(b.W), T: p.Y + Pixels(b.H)}
}

// Interpolate places a body between its previous and current committed
// states. alpha is in thousandths and clamped to [0, One].
func Interpolate(prev, cur physics.BodySnapshot, alpha subpixel.Ratio) cp.BB {
	t := float64(min(max(alpha, 0), subpixel.One)) / float64(subpixel.One)
	p := Point(prev.Pos).Lerp(Point(cur.Pos), t)
	return cp.BB{L: p.X, B: p.Y, R: p.X + Pixels(cur.W), T: p.Y + Pixels(cur.H)}
}

// Mirror flips a box horizontally inside a view of the given width.
func Mirror(bb cp.BB, width float64) cp.BB {
	return cp.BB{L: width - bb.R, B: bb.B, R: width - bb.L, T: bb.T}
}
