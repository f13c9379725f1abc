// Package physics integrates and collides axis-aligned bodies against a static
// tile grid using subpixel integer arithmetic only.
package physics

import "github.com/illdynamics/qommandah-qeen/subpixel"

// Vec is a subpixel position or per-tick velocity.
type Vec struct {
	X, Y subpixel.Units
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// AABB is the half-open box [X, X+W) x [Y, Y+H).
type AABB struct {
	X, Y, W, H subpixel.Units
}

// Overlaps reports whether two boxes share any area. Touching edges do not
// overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// Center returns the integer midpoint of the box.
func (a AABB) Center() Vec {
	return Vec{X: a.X + a.W/2, Y: a.Y + a.H/2}
}

// Body is the kinematic state of one entity. Pos is the top-left corner.
type Body struct {
	Pos      Vec
	Vel      Vec
	W, H     subpixel.Units
	OnGround bool
}

// NewBody creates a resting body at pos.
func NewBody(pos Vec, w, h subpixel.Units) *Body {
	return &Body{Pos: pos, W: w, H: h}
}

// Bounds returns the body's box at its current position.
func (b *Body) Bounds() AABB {
	return AABB{X: b.Pos.X, Y: b.Pos.Y, W: b.W, H: b.H}
}

// BodySnapshot is the read-only per-tick view handed to renderers and cameras.
type BodySnapshot struct {
	Pos      Vec
	Vel      Vec
	W, H     subpixel.Units
	OnGround bool
}

func (b *Body) Snapshot() BodySnapshot {
	return BodySnapshot{Pos: b.Pos, Vel: b.Vel, W: b.W, H: b.H, OnGround: b.OnGround}
}
