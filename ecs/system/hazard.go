package system

import (
	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// ContactDamageSystem queues at most one hit per tick from hazard tiles or
// touching enemies. The hit lands at the next tick boundary. An invulnerable
// or dead player is skipped.
type ContactDamageSystem struct{}

func NewContactDamageSystem() *ContactDamageSystem { return &ContactDamageSystem{} }

func (s *ContactDamageSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(pe ecs.Entity, p *component.Player, pb *component.PhysicsBody) {
		if p.Machine.Dead() || p.Machine.Invulnerable() {
			return
		}

		var hit locomotion.Damage
		if pb.Contacts.Hazard > 0 {
			hit.Amount = pb.Contacts.Hazard
		}

		box := pb.Body.Bounds()
		center := box.Center()
		ecs.ForEach2(w, component.HazardComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, hz *component.Hazard, other *component.PhysicsBody) {
			if e == pe || hz.Damage <= hit.Amount {
				return
			}
			obox := other.Body.Bounds()
			if !box.Overlaps(obox) {
				return
			}
			hit.Amount = hz.Damage
			hit.Dir = int(subpixel.Sign(center.X - obox.Center().X))
		})

		if hit.Amount > 0 {
			p.Pending = append(p.Pending, hit)
		}
	})
}
