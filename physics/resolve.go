package physics

import "github.com/illdynamics/qommandah-qeen/subpixel"

// Contacts records which sides of a body were blocked during one resolve.
type Contacts struct {
	Left, Right, Top, Bottom bool
	// Hazard is the largest hazard damage among tiles overlapping the
	// resolved box, zero when none.
	Hazard int
}

// Any reports whether any side was blocked.
func (c Contacts) Any() bool {
	return c.Left || c.Right || c.Top || c.Bottom
}

// Result is the corrected state produced by Resolve.
type Result struct {
	Pos      Vec
	Vel      Vec
	Contacts Contacts
	OnGround bool
}

// Resolve sweeps b from its current position toward predicted against the
// grid. X is resolved first along the body's current rows, then Y along the
// columns it ended up in. A blocked axis has its leading edge clamped to the
// tile boundary and its velocity zeroed; the other axis is untouched, which
// gives slide behaviour along walls and floors.
//
// OnGround is derived from this call alone and is never carried over.
func Resolve(g *Grid, b *Body, predicted Vec) Result {
	res := Result{Pos: b.Pos, Vel: b.Vel}

	res.Pos.X = sweepX(g, b, predicted.X, &res)
	res.Pos.Y = sweepY(g, b, res.Pos.X, predicted.Y, &res)

	final := AABB{X: res.Pos.X, Y: res.Pos.Y, W: b.W, H: b.H}
	g.Overlapping(final, func(_, _ int, p TileProps) {
		if p.Hazard > res.Contacts.Hazard {
			res.Contacts.Hazard = p.Hazard
		}
	})
	return res
}

// Apply commits a resolve result to the body.
func (b *Body) Apply(r Result) {
	b.Pos = r.Pos
	b.Vel = r.Vel
	b.OnGround = r.OnGround
}

func sweepX(g *Grid, b *Body, targetX subpixel.Units, res *Result) subpixel.Units {
	x := b.Pos.X
	dx := targetX - x
	if dx == 0 {
		return x
	}
	top := g.TileOf(b.Pos.Y)
	bottom := g.TileOf(b.Pos.Y + b.H - 1)

	if dx > 0 {
		for col := g.TileOf(x+b.W-1) + 1; col <= g.TileOf(targetX+b.W-1); col++ {
			if columnSolid(g, col, top, bottom) {
				res.Vel.X = 0
				res.Contacts.Right = true
				return g.Edge(col) - b.W
			}
		}
		return targetX
	}

	for col := g.TileOf(x) - 1; col >= g.TileOf(targetX); col-- {
		if columnSolid(g, col, top, bottom) {
			res.Vel.X = 0
			res.Contacts.Left = true
			return g.Edge(col + 1)
		}
	}
	return targetX
}

func sweepY(g *Grid, b *Body, x, targetY subpixel.Units, res *Result) subpixel.Units {
	y := b.Pos.Y
	dy := targetY - y
	left := g.TileOf(x)
	right := g.TileOf(x + b.W - 1)
	prevBottom := y + b.H

	switch {
	case dy > 0:
		for row := g.TileOf(y+b.H-1) + 1; row <= g.TileOf(targetY+b.H-1); row++ {
			if rowBlocksDown(g, row, left, right, prevBottom) {
				res.Vel.Y = 0
				res.Contacts.Bottom = true
				res.OnGround = true
				return g.Edge(row) - b.H
			}
		}
		return targetY
	case dy < 0:
		for row := g.TileOf(y) - 1; row >= g.TileOf(targetY); row-- {
			if rowSolid(g, row, left, right) {
				res.Vel.Y = 0
				res.Contacts.Top = true
				return g.Edge(row + 1)
			}
		}
		return targetY
	}

	// No vertical displacement: a bottom edge sitting exactly on a blocking
	// top edge is still standing on it.
	row := g.TileOf(prevBottom)
	if g.Edge(row) == prevBottom && rowBlocksDown(g, row, left, right, prevBottom) {
		res.Contacts.Bottom = true
		res.OnGround = true
	}
	return y
}

func columnSolid(g *Grid, col, top, bottom int) bool {
	for row := top; row <= bottom; row++ {
		if g.At(col, row).Solid {
			return true
		}
	}
	return false
}

func rowSolid(g *Grid, row, left, right int) bool {
	for col := left; col <= right; col++ {
		if g.At(col, row).Solid {
			return true
		}
	}
	return false
}

func rowBlocksDown(g *Grid, row, left, right int, prevBottom subpixel.Units) bool {
	top := g.Edge(row)
	for col := left; col <= right; col++ {
		if g.At(col, row).blocksDown(prevBottom, top) {
			return true
		}
	}
	return false
}
