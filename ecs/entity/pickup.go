package entity

import (
	"fmt"

	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// PickupSize is the side of a pickup's square trigger box.
var PickupSize = subpixel.FromPixels(12)

func NewPickupAt(w *ecs.World, pos physics.Vec, mode locomotion.Mode) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.PickupComponent.Kind(), &component.Pickup{
		Mode:      mode,
		Bounds:    physics.AABB{X: pos.X, Y: pos.Y, W: PickupSize, H: PickupSize},
		Available: true,
	}); err != nil {
		return 0, fmt.Errorf("pickup: add pickup: %w", err)
	}
	return entity, nil
}
