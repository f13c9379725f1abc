package system

import (
	"github.com/sirupsen/logrus"

	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
)

// DamageSystem opens the player's tick and applies hits queued since the last
// one, in arrival order. It must run first.
type DamageSystem struct {
	env *Env
}

func NewDamageSystem(env *Env) *DamageSystem { return &DamageSystem{env: env} }

func (s *DamageSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		p.Machine.BeginTick()
		for _, hit := range p.Pending {
			if !p.Machine.Damage(hit) {
				continue
			}
			w.Events().Push(ecs.Event{Kind: ecs.EventHurt, Entity: e, Data: hit})
			s.env.logger().WithFields(logrus.Fields{"entity": e, "amount": hit.Amount, "hp": p.Machine.HP()}).Debug("player hit")
		}
		p.Pending = p.Pending[:0]

		if sig := p.Machine.Signals(); sig.ModeLost {
			w.Events().Push(ecs.Event{Kind: ecs.EventModeLost, Entity: e, Data: sig.LostMode})
		}
	})
}
