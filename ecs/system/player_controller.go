package system

import (
	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
	"github.com/illdynamics/qommandah-qeen/physics"
)

// PlayerDecideSystem asks the locomotion machine for this tick's forces.
type PlayerDecideSystem struct {
	env *Env
}

func NewPlayerDecideSystem(env *Env) *PlayerDecideSystem { return &PlayerDecideSystem{env: env} }

func (s *PlayerDecideSystem) Update(w *ecs.World) {
	params := s.env.Hooks.EffectiveParameters(s.env.Base)
	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.MotorComponent.Kind(),
		func(_ ecs.Entity, p *component.Player, in *component.Input, pb *component.PhysicsBody, m *component.Motor) {
			m.Drive, m.Params = p.Machine.Decide(in.Effective, pb.Body.Snapshot(), params)
		})
}

// PlayerReactSystem feeds the resolved body back into the machine and turns
// its signals into events.
type PlayerReactSystem struct{}

func NewPlayerReactSystem() *PlayerReactSystem { return &PlayerReactSystem{} }

func (s *PlayerReactSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, p *component.Player, pb *component.PhysicsBody) {
		p.Machine.React(pb.Body.Snapshot(), physics.StepResult{
			Integrated: pb.Integrated,
			Contacts:   pb.Contacts,
			Landed:     pb.Landed,
		})
		sig := p.Machine.Signals()
		if sig.Landed {
			w.Events().Push(ecs.Event{Kind: ecs.EventLanded, Entity: e})
		}
		if sig.Shot {
			w.Events().Push(ecs.Event{Kind: ecs.EventShot, Entity: e, Data: sig.ShotFacing})
		}
	})
}
