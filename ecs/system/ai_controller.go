package system

import (
	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
	"github.com/illdynamics/qommandah-qeen/physics"
)

// AISystem asks every enemy brain for a steering decision and turns it into
// forces. Integration and collision are left to PhysicsSystem like any other
// body.
type AISystem struct {
	env *Env
}

func NewAISystem(env *Env) *AISystem { return &AISystem{env: env} }

func (s *AISystem) Update(w *ecs.World) {
	var target physics.Vec
	hasTarget := false
	if pe, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if pb, ok := ecs.Get(w, pe, component.PhysicsBodyComponent.Kind()); ok {
			target = pb.Body.Bounds().Center()
			hasTarget = true
		}
	}

	comp := s.env.Hooks.Composite()
	ecs.ForEach3(w,
		component.BrainComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.MotorComponent.Kind(),
		func(_ ecs.Entity, b *component.Brain, pb *component.PhysicsBody, m *component.Motor) {
			if b.Steer == nil {
				m.Drive = physics.Drive{}
				m.Params = comp.Apply(b.Params)
				return
			}
			steer := b.Steer.Steer(physics.View{
				Tick:      s.env.Tick,
				Body:      pb.Body.Snapshot(),
				Contacts:  pb.Contacts,
				Target:    target,
				HasTarget: hasTarget,
			})
			b.Last = steer
			m.Drive = steer.Drive(pb.Body, b.JumpStrength)
			m.Params = comp.Apply(b.Params)
		})
}
