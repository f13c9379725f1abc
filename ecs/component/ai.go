package component

import (
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// Brain is an enemy's decision source. Physics is shared with every other
// body; only the steering differs per archetype.
type Brain struct {
	Archetype    string
	Steer        physics.Steerable
	Params       physics.Params
	JumpStrength subpixel.Units
	// Last is the previous tick's decision, handed back for debugging.
	Last physics.Steering
}

var BrainComponent = NewComponent[Brain]()
