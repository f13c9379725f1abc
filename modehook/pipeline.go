package modehook

import (
	"slices"

	"github.com/samber/lo"

	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// Composite is the folded effect of every active hook.
type Composite struct {
	Gravity subpixel.Ratio
	Speed   subpixel.Ratio
	Time    subpixel.Ratio
	Invert  bool
	Flip    bool
	// Beat is set on ticks where an active pulsing hook hits its beat.
	Beat bool
	// Order lists the active hook ids in fold order.
	Order []string
}

// Neutral is the composite of an empty hook set.
func Neutral() Composite {
	return Composite{Gravity: subpixel.One, Speed: subpixel.One, Time: subpixel.One}
}

// Fold composes hooks in priority order, highest first. Equal priorities keep
// the order they were given in. Each product is floored before the next one.
func Fold(hooks []Hook) Composite {
	active := lo.Filter(hooks, func(h Hook, _ int) bool { return h.Active })
	slices.SortStableFunc(active, func(a, b Hook) int { return b.Priority - a.Priority })

	c := Neutral()
	for _, h := range active {
		c.Gravity = c.Gravity.Mul(h.GravityMultiplier)
		c.Speed = c.Speed.Mul(h.SpeedMultiplier)
		c.Time = c.Time.Mul(h.TimeScale)
		c.Invert = c.Invert != h.InvertInput
		c.Flip = c.Flip != h.FlipRender
	}
	c.Order = lo.Map(active, func(h Hook, _ int) string { return h.ID })
	return c
}

// ticksPerMinute is the beat grid's resolution at the fixed 60 Hz tick.
const ticksPerMinute = 60 * 60

// onBeat reports whether age, counted in ticks from activation, starts a new
// beat at bpm. The first active tick is always a beat.
func onBeat(age uint64, bpm int) bool {
	if age == 0 {
		return true
	}
	b := uint64(bpm)
	return age*b/ticksPerMinute != (age-1)*b/ticksPerMinute
}

// Effects is what PostUpdate hands to the stepper and renderer.
type Effects struct {
	FlipRender bool
	TimeScale  subpixel.Ratio
	Beat       bool
}

// Pipeline reads the registry's committed state once per tick boundary so the
// effective parameters never change inside a tick.
type Pipeline struct {
	reg  *Registry
	comp Composite
	// ages counts ticks since each pulsing hook was activated.
	ages map[string]uint64
}

func NewPipeline(reg *Registry) *Pipeline {
	p := &Pipeline{reg: reg, ages: map[string]uint64{}}
	p.comp = Fold(reg.Hooks())
	return p
}

// BeginTick commits queued activation requests, refolds the active set and
// applies the pulse of every pulsing hook that is on its beat. Pulses fold
// after the plain multipliers, in the same order.
func (p *Pipeline) BeginTick() []Change {
	changes := p.reg.Commit()
	hooks := p.reg.Hooks()
	p.comp = Fold(hooks)

	for _, h := range hooks {
		if !h.Active || h.PulseBPM <= 0 {
			delete(p.ages, h.ID)
		}
	}
	for _, id := range p.comp.Order {
		h, _ := p.reg.Get(id)
		if h.PulseBPM <= 0 {
			continue
		}
		age, seen := p.ages[id]
		if seen {
			age++
		}
		p.ages[id] = age
		if onBeat(age, h.PulseBPM) {
			p.comp.Beat = true
			p.comp.Gravity = p.comp.Gravity.Mul(h.PulseGravity)
		}
	}
	return changes
}

// Refresh refolds after the registry was reloaded. Beat grids restart.
func (p *Pipeline) Refresh() {
	clear(p.ages)
	p.comp = Fold(p.reg.Hooks())
}

func (p *Pipeline) Composite() Composite {
	return p.comp
}

// EffectiveParameters scales base by the composite: gravity by the gravity
// multiplier, run speed and acceleration by the speed multiplier. Terminal
// speeds and friction are not scaled.
func (p *Pipeline) EffectiveParameters(base physics.Params) physics.Params {
	return p.comp.Apply(base)
}

func (c Composite) Apply(base physics.Params) physics.Params {
	out := base
	out.Gravity = c.Gravity.Apply(base.Gravity)
	out.MaxRunSpeed = c.Speed.Apply(base.MaxRunSpeed)
	out.Accel = c.Speed.Apply(base.Accel)
	return out
}

// PreUpdate applies input inversion before the locomotion machine sees the
// intent.
func (p *Pipeline) PreUpdate(in locomotion.Intent) locomotion.Intent {
	if p.comp.Invert {
		in.MoveAxis = -in.MoveAxis
	}
	return in
}

// PostUpdate reports the presentation-side effects of the active set.
func (p *Pipeline) PostUpdate() Effects {
	return Effects{FlipRender: p.comp.Flip, TimeScale: p.comp.Time, Beat: p.comp.Beat}
}
