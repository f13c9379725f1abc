package component

import (
	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/physics"
)

// Player owns the locomotion machine and the damage it still has to take.
type Player struct {
	Machine *locomotion.Machine
	// Pending hits are applied at the next tick boundary.
	Pending []locomotion.Damage
	Spawn   physics.Vec
}

var PlayerComponent = NewComponent[Player]()
