package system

import (
	"github.com/sirupsen/logrus"

	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
)

// PickupSystem grants a movement mode when the player interacts with an
// available pickup, and re-offers pickups whose mode the player just lost.
type PickupSystem struct {
	env *Env
}

func NewPickupSystem(env *Env) *PickupSystem { return &PickupSystem{env: env} }

func (s *PickupSystem) Update(w *ecs.World) {
	playerEnt, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	p, _ := ecs.Get(w, playerEnt, component.PlayerComponent.Kind())
	in, _ := ecs.Get(w, playerEnt, component.InputComponent.Kind())
	pb, _ := ecs.Get(w, playerEnt, component.PhysicsBodyComponent.Kind())
	if p == nil || in == nil || pb == nil {
		return
	}
	sig := p.Machine.Signals()
	granted := false

	ecs.ForEach(w, component.PickupComponent.Kind(), func(e ecs.Entity, pk *component.Pickup) {
		if sig.ModeLost && sig.LostMode == pk.Mode {
			pk.Available = true
		}
		if granted || !pk.Available || !in.Effective.InteractPressed {
			return
		}
		if !pb.Body.Bounds().Overlaps(pk.Bounds) || !p.Machine.Grant(pk.Mode) {
			return
		}
		pk.Available = false
		granted = true
		w.Events().Push(ecs.Event{Kind: ecs.EventPickup, Entity: e, Data: pk.Mode})
		s.env.logger().WithFields(logrus.Fields{"entity": e, "mode": pk.Mode}).Debug("mode granted")
	})
}
