package system

import (
	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
	"github.com/illdynamics/qommandah-qeen/physics"
)

// PhysicsSystem integrates and resolves every driven body against the level
// grid, one entity at a time in id order.
type PhysicsSystem struct {
	env *Env
}

func NewPhysicsSystem(env *Env) *PhysicsSystem { return &PhysicsSystem{env: env} }

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s.env.Grid == nil {
		return
	}
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.MotorComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, m *component.Motor) {
		pb.Prev = pb.Body.Snapshot()
		res := physics.Step(s.env.Grid, pb.Body, m.Params, m.Drive)
		pb.Integrated = res.Integrated
		pb.Contacts = res.Contacts
		pb.Landed = res.Landed
		m.Drive = physics.Drive{}
	})
}
