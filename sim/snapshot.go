package sim

import (
	"gopkg.in/yaml.v3"

	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// BodyView is the read-only state of one body for renderers and cameras.
type BodyView struct {
	Pos      physics.Vec `yaml:"pos,flow"`
	Vel      physics.Vec `yaml:"vel,flow"`
	W        int32       `yaml:"w"`
	H        int32       `yaml:"h"`
	OnGround bool        `yaml:"on_ground"`
}

func viewOf(b physics.BodySnapshot) BodyView {
	return BodyView{Pos: b.Pos, Vel: b.Vel, W: int32(b.W), H: int32(b.H), OnGround: b.OnGround}
}

// Snapshot returns the body as a physics snapshot again.
func (v BodyView) Snapshot() physics.BodySnapshot {
	return physics.BodySnapshot{Pos: v.Pos, Vel: v.Vel, W: subpixel.Units(v.W), H: subpixel.Units(v.H), OnGround: v.OnGround}
}

// ContactView mirrors physics.Contacts for effect systems.
type ContactView struct {
	Left   bool `yaml:"left,omitempty"`
	Right  bool `yaml:"right,omitempty"`
	Top    bool `yaml:"top,omitempty"`
	Bottom bool `yaml:"bottom,omitempty"`
	Hazard int  `yaml:"hazard,omitempty"`
}

func contactsOf(c physics.Contacts) ContactView {
	return ContactView{Left: c.Left, Right: c.Right, Top: c.Top, Bottom: c.Bottom, Hazard: c.Hazard}
}

type PlayerView struct {
	Body BodyView `yaml:"body"`
	// Prev is the body at the start of the tick, for render interpolation.
	Prev BodyView `yaml:"prev"`
	// Integrated is the velocity before collision, Body.Vel after it.
	Integrated physics.Vec `yaml:"integrated,flow"`
	Contacts   ContactView `yaml:"contacts,flow"`
	Landed     bool        `yaml:"landed,omitempty"`

	Mode         string `yaml:"mode"`
	SubState     string `yaml:"sub_state"`
	HP           int    `yaml:"hp"`
	MaxHP        int    `yaml:"max_hp"`
	Dead         bool   `yaml:"dead,omitempty"`
	Invulnerable int    `yaml:"invulnerable,omitempty"`
	Facing       int    `yaml:"facing"`
	Shooting     bool   `yaml:"shooting,omitempty"`
	FuelPercent  int    `yaml:"fuel_percent,omitempty"`
	HasFuel      bool   `yaml:"has_fuel,omitempty"`
	Fuel         int    `yaml:"fuel,omitempty"`
	DashReady    bool   `yaml:"dash_ready,omitempty"`
}

type EnemyView struct {
	Entity    uint64      `yaml:"entity"`
	Archetype string      `yaml:"archetype"`
	Body      BodyView    `yaml:"body"`
	Prev      BodyView    `yaml:"prev"`
	Contacts  ContactView `yaml:"contacts,flow"`
	MoveAxis  int         `yaml:"move_axis"`
	Jump      bool        `yaml:"jump,omitempty"`
}

type PickupView struct {
	Mode      string       `yaml:"mode"`
	Bounds    physics.AABB `yaml:"bounds,flow"`
	Available bool         `yaml:"available"`
}

// SignalView lists what happened during the tick.
type SignalView struct {
	Kind   string `yaml:"kind"`
	Entity uint64 `yaml:"entity"`
}

type EffectsView struct {
	FlipRender bool           `yaml:"flip_render,omitempty"`
	TimeScale  subpixel.Ratio `yaml:"time_scale"`
	Gravity    subpixel.Ratio `yaml:"gravity"`
	Speed      subpixel.Ratio `yaml:"speed"`
	Invert     bool           `yaml:"invert,omitempty"`
	Beat       bool           `yaml:"beat,omitempty"`
}

// Snapshot is the complete read-only state after a tick.
type Snapshot struct {
	Tick    uint64       `yaml:"tick"`
	Level   string       `yaml:"level"`
	Player  PlayerView   `yaml:"player"`
	Enemies []EnemyView  `yaml:"enemies,omitempty"`
	Pickups []PickupView `yaml:"pickups,omitempty"`
	Hooks   []string     `yaml:"hooks,flow"`
	Effects EffectsView  `yaml:"effects"`
	Signals []SignalView `yaml:"signals,omitempty"`
}

// YAML renders the snapshot for debugging and clipboard export.
func (s Snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

func (s *Simulation) snapshot(events []ecs.Event) Snapshot {
	comp := s.hooks.Composite()
	snap := Snapshot{
		Tick:  s.tick,
		Level: s.stage.Name,
		Hooks: append([]string(nil), comp.Order...),
		Effects: EffectsView{
			FlipRender: s.env.Effects.FlipRender,
			TimeScale:  s.env.Effects.TimeScale,
			Gravity:    comp.Gravity,
			Speed:      comp.Speed,
			Invert:     comp.Invert,
			Beat:       comp.Beat,
		},
	}

	if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok {
		ls := p.Machine.Snapshot()
		snap.Player = PlayerView{
			Mode:         ls.Mode.String(),
			SubState:     ls.SubState.String(),
			HP:           ls.HP,
			MaxHP:        ls.MaxHP,
			Dead:         p.Machine.Dead(),
			Invulnerable: ls.Invulnerable,
			Facing:       ls.Facing,
			Shooting:     ls.Shooting,
			FuelPercent:  ls.FuelPercent,
			HasFuel:      ls.HasFuel,
			Fuel:         p.Machine.Fuel(),
			DashReady:    ls.DashReady,
		}
	}
	if pb, ok := ecs.Get(s.world, s.player, component.PhysicsBodyComponent.Kind()); ok {
		snap.Player.Body = viewOf(pb.Body.Snapshot())
		snap.Player.Prev = viewOf(pb.Prev)
		snap.Player.Integrated = pb.Integrated
		snap.Player.Contacts = contactsOf(pb.Contacts)
		snap.Player.Landed = pb.Landed
	}

	ecs.ForEach2(s.world, component.BrainComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, b *component.Brain, pb *component.PhysicsBody) {
		snap.Enemies = append(snap.Enemies, EnemyView{
			Entity:    uint64(e),
			Archetype: b.Archetype,
			Body:      viewOf(pb.Body.Snapshot()),
			Prev:      viewOf(pb.Prev),
			Contacts:  contactsOf(pb.Contacts),
			MoveAxis:  b.Last.MoveAxis,
			Jump:      b.Last.Jump,
		})
	})
	ecs.ForEach(s.world, component.PickupComponent.Kind(), func(_ ecs.Entity, pk *component.Pickup) {
		snap.Pickups = append(snap.Pickups, PickupView{Mode: pk.Mode.String(), Bounds: pk.Bounds, Available: pk.Available})
	})
	for _, ev := range events {
		snap.Signals = append(snap.Signals, SignalView{Kind: string(ev.Kind), Entity: uint64(ev.Entity)})
	}
	return snap
}
