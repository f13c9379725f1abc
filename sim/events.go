package sim

import (
	"fmt"

	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/modehook"
	"github.com/illdynamics/qommandah-qeen/physics"
)

// EventKind names an external event. Events are queued between ticks and
// applied at the start of the next one, in the order they were queued.
type EventKind string

const (
	EventGrant          EventKind = "grant"
	EventDamage         EventKind = "damage"
	EventRespawn        EventKind = "respawn"
	EventActivateHook   EventKind = "activate_hook"
	EventDeactivateHook EventKind = "deactivate_hook"
	EventToggleHook     EventKind = "toggle_hook"
	EventSetTuning      EventKind = "set_tuning"
	EventSetParams      EventKind = "set_params"
)

// Event is one external request. Only the fields its kind uses are set.
type Event struct {
	Kind   EventKind          `yaml:"kind"`
	Mode   locomotion.Mode    `yaml:"mode,omitempty"`
	Damage locomotion.Damage  `yaml:"damage,omitempty"`
	Hook   string             `yaml:"hook,omitempty"`
	Tuning *locomotion.Tuning `yaml:"tuning,omitempty"`
	Params *physics.Params    `yaml:"params,omitempty"`
}

func (e Event) isHook() bool {
	switch e.Kind {
	case EventActivateHook, EventDeactivateHook, EventToggleHook:
		return true
	}
	return false
}

// Grant queues a mode pickup for the player.
func (s *Simulation) Grant(mode locomotion.Mode) {
	s.push(Event{Kind: EventGrant, Mode: mode})
}

// Damage queues a hit. It is applied at the next tick boundary whether or not
// the player is invulnerable.
func (s *Simulation) Damage(d locomotion.Damage) {
	s.push(Event{Kind: EventDamage, Damage: d})
}

// Respawn queues a respawn at the stage's player spawn.
func (s *Simulation) Respawn() {
	s.push(Event{Kind: EventRespawn})
}

func (s *Simulation) ActivateHook(id string) error {
	return s.pushHook(EventActivateHook, id)
}

func (s *Simulation) DeactivateHook(id string) error {
	return s.pushHook(EventDeactivateHook, id)
}

func (s *Simulation) ToggleHook(id string) error {
	return s.pushHook(EventToggleHook, id)
}

// SetTuning queues new player constants.
func (s *Simulation) SetTuning(t locomotion.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("sim: set tuning: %w", err)
	}
	s.push(Event{Kind: EventSetTuning, Tuning: &t})
	return nil
}

// SetParams queues new base physics parameters.
func (s *Simulation) SetParams(p physics.Params) {
	s.push(Event{Kind: EventSetParams, Params: &p})
}

// Queue queues a prepared event, as read back from a recording.
func (s *Simulation) Queue(e Event) error {
	switch e.Kind {
	case EventGrant, EventDamage, EventRespawn, EventSetParams:
	case EventActivateHook, EventDeactivateHook, EventToggleHook:
		return s.pushHook(e.Kind, e.Hook)
	case EventSetTuning:
		if e.Tuning == nil {
			return fmt.Errorf("sim: %s without tuning", e.Kind)
		}
		return s.SetTuning(*e.Tuning)
	default:
		return fmt.Errorf("sim: unknown event %q", e.Kind)
	}
	if e.Kind == EventSetParams && e.Params == nil {
		return fmt.Errorf("sim: %s without params", e.Kind)
	}
	s.push(e)
	return nil
}

func (s *Simulation) pushHook(kind EventKind, id string) error {
	if _, ok := s.registry.Get(id); !ok {
		return fmt.Errorf("sim: %s %q: %w", kind, id, modehook.ErrUnknownHook)
	}
	s.push(Event{Kind: kind, Hook: id})
	return nil
}

func (s *Simulation) push(e Event) {
	s.queue = append(s.queue, e)
}
