// Package sim owns one running level: the entity world, the tile grid and the
// mode-hook registry. It advances everything in lockstep, one fixed tick per
// Tick call, and never reads a clock.
package sim

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
	"github.com/illdynamics/qommandah-qeen/ecs/entity"
	"github.com/illdynamics/qommandah-qeen/ecs/system"
	"github.com/illdynamics/qommandah-qeen/levels"
	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/modehook"
)

type Simulation struct {
	cfg   Config
	stage *levels.Stage
	log   *logrus.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	env       *system.Env
	registry  *modehook.Registry
	hooks     *modehook.Pipeline

	player ecs.Entity
	tick   uint64
	queue  []Event
	last   Snapshot
}

// New builds a simulation for stage. Unknown enemy archetypes are an error.
func New(stage *levels.Stage, cfg Config, log *logrus.Logger) (*Simulation, error) {
	if stage == nil || stage.Grid == nil {
		return nil, fmt.Errorf("sim: nil stage")
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	reg := modehook.NewRegistry(log)
	if err := reg.Load(cfg.Hooks); err != nil {
		return nil, fmt.Errorf("sim: load hooks: %w", err)
	}

	s := &Simulation{
		cfg:      cfg,
		log:      log,
		registry: reg,
		hooks:    modehook.NewPipeline(reg),
	}
	if err := s.build(stage); err != nil {
		return nil, err
	}
	return s, nil
}

// build creates a fresh world for stage. The hook registry survives.
func (s *Simulation) build(stage *levels.Stage) error {
	world := ecs.NewWorld()
	env := &system.Env{
		Grid:  stage.Grid,
		Base:  s.cfg.Base,
		Hooks: s.hooks,
		Log:   s.log,
	}
	env.Effects = s.hooks.PostUpdate()

	player, err := entity.NewPlayerAt(world, stage.PlayerSpawn, s.cfg.Player)
	if err != nil {
		return fmt.Errorf("sim: %s: %w", stage.Name, err)
	}
	for _, spawn := range stage.Enemies {
		arch, ok := s.cfg.Archetypes[spawn.Archetype]
		if !ok {
			return fmt.Errorf("sim: %s: unknown enemy archetype %q", stage.Name, spawn.Archetype)
		}
		if _, err := entity.NewEnemyAt(world, spawn.Pos, arch); err != nil {
			return fmt.Errorf("sim: %s: %w", stage.Name, err)
		}
	}
	for _, spawn := range stage.Pickups {
		if _, err := entity.NewPickupAt(world, spawn.Pos, spawn.Mode); err != nil {
			return fmt.Errorf("sim: %s: %w", stage.Name, err)
		}
	}

	s.world = world
	s.env = env
	s.stage = stage
	s.player = player
	s.scheduler = ecs.NewScheduler(
		system.NewDamageSystem(env),
		system.NewInputSystem(env),
		system.NewPickupSystem(env),
		system.NewPlayerDecideSystem(env),
		system.NewAISystem(env),
		system.NewPhysicsSystem(env),
		system.NewPlayerReactSystem(),
		system.NewContactDamageSystem(),
		system.NewModeHookSystem(env),
	)
	s.queue = nil
	s.last = s.snapshot(nil)
	return nil
}

// LoadLevel swaps in a new stage between ticks. Hooks are cleared so the new
// level starts from its own configuration; the tick counter keeps running.
func (s *Simulation) LoadLevel(stage *levels.Stage) error {
	if stage == nil || stage.Grid == nil {
		return fmt.Errorf("sim: nil stage")
	}
	if err := s.registry.Load(s.cfg.Hooks); err != nil {
		return fmt.Errorf("sim: reload hooks: %w", err)
	}
	s.hooks.Refresh()
	if err := s.build(stage); err != nil {
		return err
	}
	s.log.WithField("level", stage.Name).Info("level loaded")
	return nil
}

// Reconfigure swaps the configuration used by the next LoadLevel. The new
// player tuning and base physics are also queued for the running level.
func (s *Simulation) Reconfigure(cfg Config) error {
	if err := cfg.Player.Tuning.Validate(); err != nil {
		return fmt.Errorf("sim: reconfigure: %w", err)
	}
	s.cfg = cfg
	s.push(Event{Kind: EventSetTuning, Tuning: &cfg.Player.Tuning})
	s.push(Event{Kind: EventSetParams, Params: &cfg.Base})
	return nil
}

// Tick advances the simulation by one fixed step and returns the committed
// state.
func (s *Simulation) Tick(in locomotion.Intent) Snapshot {
	queued := s.queue
	s.queue = nil

	for _, ev := range queued {
		if ev.isHook() {
			s.applyHook(ev)
		}
	}
	for _, ch := range s.hooks.BeginTick() {
		s.log.WithFields(logrus.Fields{"hook": ch.ID, "active": ch.Active, "tick": s.tick}).Debug("hook changed")
	}
	for _, ev := range queued {
		if !ev.isHook() {
			s.apply(ev)
		}
	}

	s.env.Tick = s.tick
	if inp, ok := ecs.Get(s.world, s.player, component.InputComponent.Kind()); ok {
		inp.Raw = in
	}
	s.scheduler.Update(s.world)

	s.last = s.snapshot(s.world.Events().Peek())
	s.tick++
	return s.last
}

func (s *Simulation) applyHook(ev Event) {
	var err error
	switch ev.Kind {
	case EventActivateHook:
		err = s.registry.Activate(ev.Hook)
	case EventDeactivateHook:
		err = s.registry.Deactivate(ev.Hook)
	case EventToggleHook:
		err = s.registry.Toggle(ev.Hook)
	}
	if err != nil {
		s.log.WithError(err).WithField("hook", ev.Hook).Warn("hook request ignored")
	}
}

func (s *Simulation) apply(ev Event) {
	p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	switch ev.Kind {
	case EventGrant:
		if p.Machine.Grant(ev.Mode) {
			s.log.WithFields(logrus.Fields{"mode": ev.Mode, "tick": s.tick}).Debug("mode granted")
		}
	case EventDamage:
		p.Pending = append(p.Pending, ev.Damage)
	case EventRespawn:
		p.Machine.Respawn()
		p.Pending = p.Pending[:0]
		entity.ResetBody(s.world, s.player, p.Spawn)
		ecs.ForEach(s.world, component.PickupComponent.Kind(), func(_ ecs.Entity, pk *component.Pickup) {
			pk.Available = true
		})
	case EventSetTuning:
		p.Machine.SetTuning(*ev.Tuning)
	case EventSetParams:
		s.env.Base = *ev.Params
		s.cfg.Base = *ev.Params
	}
}

// Last returns the snapshot produced by the most recent Tick.
func (s *Simulation) Last() Snapshot { return s.last }

// TickCount is the number of ticks run so far.
func (s *Simulation) TickCount() uint64 { return s.tick }

func (s *Simulation) Stage() *levels.Stage { return s.stage }

// Hooks returns the registered hooks in registration order.
func (s *Simulation) Hooks() []modehook.Hook { return s.registry.Hooks() }

// Effects are the render-side effects committed by the last tick.
func (s *Simulation) Effects() modehook.Effects { return s.env.Effects }

// Scripts is the runtime backing scripted enemies, nil when none is set.
func (s *Simulation) Scripts() *system.ScriptRuntime { return s.cfg.Scripts }
