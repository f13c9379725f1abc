package entity

import (
	"fmt"

	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// Archetype is a resolved enemy template. NewSteer is called once per spawn
// so every enemy gets its own thinker state.
type Archetype struct {
	Name          string
	W, H          subpixel.Units
	Params        physics.Params
	JumpStrength  subpixel.Units
	ContactDamage int
	NewSteer      func() (physics.Steerable, error)
}

func NewEnemyAt(w *ecs.World, pos physics.Vec, arch Archetype) (ecs.Entity, error) {
	var steer physics.Steerable
	if arch.NewSteer != nil {
		s, err := arch.NewSteer()
		if err != nil {
			return 0, fmt.Errorf("enemy %s: build thinker: %w", arch.Name, err)
		}
		steer = s
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy %s: add enemy tag: %w", arch.Name, err)
	}
	if err := ecs.Add(w, entity, component.BrainComponent.Kind(), &component.Brain{
		Archetype:    arch.Name,
		Steer:        steer,
		Params:       arch.Params,
		JumpStrength: arch.JumpStrength,
	}); err != nil {
		return 0, fmt.Errorf("enemy %s: add brain: %w", arch.Name, err)
	}
	if arch.ContactDamage > 0 {
		if err := ecs.Add(w, entity, component.HazardComponent.Kind(), &component.Hazard{Damage: arch.ContactDamage}); err != nil {
			return 0, fmt.Errorf("enemy %s: add hazard: %w", arch.Name, err)
		}
	}
	if err := addBody(w, entity, pos, arch.W, arch.H); err != nil {
		return 0, fmt.Errorf("enemy %s: %w", arch.Name, err)
	}
	return entity, nil
}
