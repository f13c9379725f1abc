package locomotion

import (
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// Signals are one-tick notifications for effect and pickup collaborators.
// They are cleared by BeginTick.
type Signals struct {
	Shot       bool
	ShotFacing int
	// ModeLost is set when damage knocked the player out of LostMode.
	ModeLost bool
	LostMode Mode
	Landed   bool
}

// Damage is an incoming hit. Dir is the knockback direction; zero pushes the
// player away from where it is facing.
type Damage struct {
	Amount int
	Dir    int
}

// Snapshot is the read-only HUD view of the machine.
type Snapshot struct {
	Mode         Mode
	SubState     SubState
	Shooting     bool
	HP           int
	MaxHP        int
	Invulnerable int
	Facing       int
	// FuelPercent is only meaningful when HasFuel is set (Jetpack mode).
	FuelPercent int
	HasFuel     bool
	// DashReady reports whether a jetpack dash would start this tick.
	DashReady bool
}

type pogoData struct {
	bounces int
}

type jetpackData struct {
	fuel        int
	sinceThrust int
	thrusting   bool

	dash         int
	dashCooldown int
	dashDir      int
	dashing      bool
}

// Machine is a tagged variant: mode selects which of the per-mode blocks is
// live, and every transition goes through Decide, React, Damage, Grant or
// Respawn.
type Machine struct {
	tuning Tuning

	mode Mode
	sub  SubState

	hp           int
	invulnerable int
	hurt         int
	shooting     int
	cooldown     int
	facing       int
	knockback    int

	pogo pogoData
	jet  jetpackData

	signals Signals
}

func New(t Tuning) *Machine {
	m := &Machine{tuning: t}
	m.Respawn()
	return m
}

// SetTuning swaps constants in place, clamping hp and fuel to the new
// maximums.
func (m *Machine) SetTuning(t Tuning) {
	m.tuning = t
	m.hp = min(m.hp, t.MaxHP)
	m.jet.fuel = min(m.jet.fuel, t.Jetpack.MaxFuel)
}

func (m *Machine) Tuning() Tuning { return m.tuning }

func (m *Machine) Mode() Mode { return m.mode }

func (m *Machine) SubState() SubState { return m.sub }

func (m *Machine) HP() int { return m.hp }

func (m *Machine) Dead() bool { return m.hp <= 0 }

func (m *Machine) Invulnerable() bool { return m.invulnerable > 0 }

// Fuel returns the raw jetpack fuel, zero outside Jetpack mode.
func (m *Machine) Fuel() int { return m.jet.fuel }

func (m *Machine) Signals() Signals { return m.signals }

// BeginTick clears last tick's signals. It runs before external events are
// applied so that signals raised by those events survive the tick.
func (m *Machine) BeginTick() {
	m.signals = Signals{}
}

// Decide turns this tick's intent into integrator forces and the parameter
// set the active sub-state runs with. b is the body as left by the previous
// tick's resolve.
func (m *Machine) Decide(in Intent, b physics.BodySnapshot, p physics.Params) (physics.Drive, physics.Params) {
	in = in.Quantize()
	if m.Dead() {
		return physics.Drive{}, p
	}
	if m.knockback != 0 {
		d := physics.Drive{
			Launch:   true,
			LaunchVY: -m.tuning.KnockbackY,
			Shove:    true,
			ShoveVX:  subpixel.Units(m.knockback) * m.tuning.KnockbackX,
		}
		m.knockback = 0
		return d, p
	}
	if m.hurt > 0 {
		return physics.Drive{}, p
	}

	if in.MoveAxis != 0 {
		m.facing = in.MoveAxis
	}
	m.decideShoot(in)

	switch m.mode {
	case Pogo:
		return m.decidePogo(in, b, p)
	case Jetpack:
		return m.decideJetpack(in, b, p)
	}
	return m.decideNormal(in, b, p)
}

func (m *Machine) decideShoot(in Intent) {
	if !in.ShootPressed || m.cooldown > 0 {
		return
	}
	m.shooting = m.tuning.ShootTicks
	m.cooldown = m.tuning.ShootCooldown
	m.signals.Shot = true
	m.signals.ShotFacing = m.facing
}

// React classifies the sub-state from the resolved body and advances timers.
func (m *Machine) React(b physics.BodySnapshot, step physics.StepResult) {
	if step.Landed {
		m.signals.Landed = true
	}

	switch {
	case m.Dead():
		m.sub = Dead
	case m.mode == Pogo:
		m.sub = m.pogoState(b)
	case m.mode == Jetpack:
		m.sub = m.jetpackState(b)
	default:
		m.sub = m.normalState(b)
	}

	m.invulnerable = countdown(m.invulnerable)
	m.hurt = countdown(m.hurt)
	m.shooting = countdown(m.shooting)
	m.cooldown = countdown(m.cooldown)
	m.jet.dashCooldown = countdown(m.jet.dashCooldown)
}

// Damage applies a hit. Non-positive amounts and hits on a dead player are
// ignored. Any special mode is lost regardless of the remaining hp.
func (m *Machine) Damage(d Damage) bool {
	if d.Amount <= 0 || m.Dead() {
		return false
	}
	m.hp = max(m.hp-d.Amount, 0)
	if m.mode != Normal {
		m.signals.ModeLost = true
		m.signals.LostMode = m.mode
		m.enter(Normal)
	}
	m.shooting = 0

	if m.hp == 0 {
		m.sub = Dead
		m.hurt, m.invulnerable, m.knockback = 0, 0, 0
		return true
	}

	m.hurt = m.tuning.HurtTicks
	m.invulnerable = m.tuning.InvulnerableTicks
	dir := subpixel.Sign(subpixel.Units(d.Dir))
	if dir == 0 {
		dir = subpixel.Units(-m.facing)
	}
	m.knockback = int(dir)
	m.sub = Hurt
	return true
}

// Grant switches into Pogo or Jetpack. The previous mode's resources are
// discarded even when the same mode is granted again. Granting Normal or
// granting to a dead player does nothing.
//
// A grant ends any hurt stagger and drops knockback that has not launched
// yet, so the granted mode is in control from the next Decide on.
// Invulnerability keeps running.
func (m *Machine) Grant(mode Mode) bool {
	if m.Dead() || (mode != Pogo && mode != Jetpack) {
		return false
	}
	m.hurt, m.knockback = 0, 0
	m.enter(mode)
	return true
}

// Respawn restores a fresh Normal-mode player with full hp.
func (m *Machine) Respawn() {
	m.enter(Normal)
	m.hp = m.tuning.MaxHP
	m.sub = Idle
	m.invulnerable, m.hurt, m.shooting, m.cooldown, m.knockback = 0, 0, 0, 0, 0
	m.facing = 1
}

func (m *Machine) enter(mode Mode) {
	m.mode = mode
	m.pogo = pogoData{}
	m.jet = jetpackData{}
	switch mode {
	case Pogo:
		m.sub = PogoIdle
	case Jetpack:
		m.jet.fuel = m.tuning.Jetpack.MaxFuel
		m.sub = JetpackIdle
	default:
		m.sub = Idle
	}
}

func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Mode:         m.mode,
		SubState:     m.sub,
		Shooting:     m.shooting > 0,
		HP:           m.hp,
		MaxHP:        m.tuning.MaxHP,
		Invulnerable: m.invulnerable,
		Facing:       m.facing,
	}
	if m.mode == Jetpack && m.tuning.Jetpack.MaxFuel > 0 {
		s.HasFuel = true
		s.FuelPercent = m.jet.fuel * 100 / m.tuning.Jetpack.MaxFuel
		s.DashReady = m.canDash()
	}
	return s
}

func countdown(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}

// controlled scales horizontal authority for the special modes.
func controlled(p physics.Params, r subpixel.Ratio) physics.Params {
	p.MaxRunSpeed = r.Apply(p.MaxRunSpeed)
	p.Accel = r.Apply(p.Accel)
	return p
}
