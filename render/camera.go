package render

import "github.com/jakecoffman/cp"

// Camera centers a fixed-size view on a target and keeps it inside the level.
type Camera struct {
	Pos          cp.Vector
	ViewW, ViewH float64
	LevelW       float64
	LevelH       float64
}

func NewCamera(viewW, viewH, levelW, levelH float64) *Camera {
	return &Camera{ViewW: viewW, ViewH: viewH, LevelW: levelW, LevelH: levelH}
}

// Follow moves the camera so target is centered, clamped to the level. A
// level smaller than the view is centered instead.
func (c *Camera) Follow(target cp.Vector) {
	c.Pos = cp.Vector{
		X: clampAxis(target.X-c.ViewW/2, c.ViewW, c.LevelW),
		Y: clampAxis(target.Y-c.ViewH/2, c.ViewH, c.LevelH),
	}
}

func clampAxis(v, view, level float64) float64 {
	if level <= view {
		return (level - view) / 2
	}
	return min(max(v, 0), level-view)
}

// ToScreen converts a world box to screen space.
func (c *Camera) ToScreen(bb cp.BB) cp.BB {
	return cp.BB{L: bb.L - c.Pos.X, B: bb.B - c.Pos.Y, R: bb.R - c.Pos.X, T: bb.T - c.Pos.Y}
}
