package entity

import (
	"fmt"

	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// PlayerConfig is what NewPlayerAt needs beyond a position.
type PlayerConfig struct {
	W, H   subpixel.Units
	Tuning locomotion.Tuning
}

func NewPlayerAt(w *ecs.World, pos physics.Vec, cfg PlayerConfig) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		Machine: locomotion.New(cfg.Tuning),
		Spawn:   pos,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := addBody(w, entity, pos, cfg.W, cfg.H); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return entity, nil
}

// ResetBody puts a body back at pos at rest.
func ResetBody(w *ecs.World, e ecs.Entity, pos physics.Vec) bool {
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return false
	}
	pb.Body.Pos = pos
	pb.Body.Vel = physics.Vec{}
	pb.Body.OnGround = false
	pb.Prev = pb.Body.Snapshot()
	pb.Integrated = physics.Vec{}
	pb.Contacts = physics.Contacts{}
	pb.Landed = false
	return true
}

func addBody(w *ecs.World, e ecs.Entity, pos physics.Vec, width, height subpixel.Units) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("body size must be positive, got %dx%d", width, height)
	}
	body := physics.NewBody(pos, width, height)
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body: body,
		Prev: body.Snapshot(),
	}); err != nil {
		return fmt.Errorf("add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.MotorComponent.Kind(), &component.Motor{}); err != nil {
		return fmt.Errorf("add motor: %w", err)
	}
	return nil
}
