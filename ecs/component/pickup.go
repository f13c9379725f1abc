package component

import (
	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/physics"
)

// Pickup grants a movement mode when the player interacts while overlapping
// it. A taken pickup comes back when the player loses that mode.
type Pickup struct {
	Mode      locomotion.Mode
	Bounds    physics.AABB
	Available bool
}

var PickupComponent = NewComponent[Pickup]()
