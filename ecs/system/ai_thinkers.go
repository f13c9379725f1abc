package system

import (
	"fmt"

	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// Built-in thinkers, used when an archetype has no script or its script fails
// to compile.

type patrolThinker struct {
	dir int
}

// Patrol walks until it hits a wall and then turns around.
func Patrol() physics.Steerable { return &patrolThinker{dir: 1} }

func (t *patrolThinker) Steer(v physics.View) physics.Steering {
	switch {
	case v.Contacts.Left:
		t.dir = 1
	case v.Contacts.Right:
		t.dir = -1
	}
	return physics.Steering{MoveAxis: t.dir}
}

type hopperThinker struct {
	period uint64
	slack  subpixel.Units
}

// Hopper drifts toward the target and hops every period ticks while grounded.
// It holds still when the target is within slack horizontally.
func Hopper(period uint64, slack subpixel.Units) physics.Steerable {
	if period == 0 {
		period = 1
	}
	return &hopperThinker{period: period, slack: slack}
}

func (t *hopperThinker) Steer(v physics.View) physics.Steering {
	var s physics.Steering
	if v.HasTarget {
		switch {
		case v.Target.X+t.slack < v.Body.Pos.X:
			s.MoveAxis = -1
		case v.Target.X > v.Body.Pos.X+t.slack:
			s.MoveAxis = 1
		}
	}
	s.Jump = v.Body.OnGround && v.Tick%t.period == 0
	return s
}

// NewThinker builds a built-in thinker by name.
func NewThinker(name string) (physics.Steerable, error) {
	switch name {
	case "patrol":
		return Patrol(), nil
	case "hopper":
		return Hopper(45, 512), nil
	case "idle", "":
		return physics.SteerFunc(func(physics.View) physics.Steering { return physics.Steering{} }), nil
	}
	return nil, fmt.Errorf("ai: unknown thinker %q", name)
}
