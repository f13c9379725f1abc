package modehook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

func hook(id string, priority int, gravity subpixel.Ratio) Hook {
	h := New(id)
	h.Priority = priority
	h.GravityMultiplier = gravity
	return h
}

func TestGravityMultipliersCompose(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Load([]Hook{
		hook("half", 10, 500),
		hook("double", 5, 2000),
	}))
	pipe := NewPipeline(reg)
	require.NoError(t, reg.Activate("half"))
	require.NoError(t, reg.Activate("double"))
	pipe.BeginTick()

	c := pipe.Composite()
	assert.Equal(t, subpixel.One, c.Gravity)
	assert.Equal(t, []string{"half", "double"}, c.Order)

	base := physics.DefaultParams()
	assert.Equal(t, base.Gravity, pipe.EffectiveParameters(base).Gravity)
}

func TestFoldOrder(t *testing.T) {
	tests := []struct {
		name  string
		hooks []Hook
		order []string
	}{
		{
			name:  "higher priority first",
			hooks: []Hook{hook("a", 1, 1000), hook("b", 3, 1000), hook("c", 2, 1000)},
			order: []string{"b", "c", "a"},
		},
		{
			name:  "ties keep registration order",
			hooks: []Hook{hook("x", 0, 1000), hook("y", 0, 1000), hook("z", 0, 1000)},
			order: []string{"x", "y", "z"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range tt.hooks {
				tt.hooks[i].Active = true
			}
			assert.Equal(t, tt.order, Fold(tt.hooks).Order)
		})
	}
}

func TestFoldFloorsEachStep(t *testing.T) {
	a := hook("a", 2, 333)
	b := hook("b", 1, 3000)
	a.Active, b.Active = true, true

	assert.Equal(t, subpixel.Ratio(999), Fold([]Hook{a, b}).Gravity)

	// 0.001 * 0.5 floors to zero before the boost applies.
	tiny := hook("tiny", 2, 1)
	half := hook("half", 1, 500)
	boost := hook("boost", 0, 4000)
	tiny.Active, half.Active, boost.Active = true, true, true
	assert.Equal(t, subpixel.Ratio(0), Fold([]Hook{tiny, half, boost}).Gravity)
}

func TestActivationWaitsForTickBoundary(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Load([]Hook{hook("low_g", 0, 400)}))
	pipe := NewPipeline(reg)
	base := physics.DefaultParams()

	require.NoError(t, reg.Activate("low_g"))
	assert.True(t, reg.Pending())
	assert.Equal(t, base.Gravity, pipe.EffectiveParameters(base).Gravity)

	changes := pipe.BeginTick()
	assert.Equal(t, []Change{{ID: "low_g", Active: true}}, changes)
	assert.Equal(t, subpixel.Units(16), pipe.EffectiveParameters(base).Gravity)

	require.NoError(t, reg.Deactivate("low_g"))
	assert.Equal(t, subpixel.Units(16), pipe.EffectiveParameters(base).Gravity)
	pipe.BeginTick()
	assert.Equal(t, base.Gravity, pipe.EffectiveParameters(base).Gravity)
}

func TestCommitCollapsesRequests(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Load([]Hook{New("a"), New("b")}))

	require.NoError(t, reg.Activate("a"))
	require.NoError(t, reg.Deactivate("a"))
	require.NoError(t, reg.Toggle("b"))
	require.NoError(t, reg.Toggle("b"))
	require.NoError(t, reg.Toggle("b"))

	assert.Equal(t, []Change{{ID: "b", Active: true}}, reg.Commit())
	assert.False(t, reg.Pending())
	assert.Nil(t, reg.Commit())
}

func TestRegistryErrors(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Register(New("a")))
	assert.ErrorIs(t, reg.Register(New("a")), ErrDuplicateHook)
	assert.ErrorIs(t, reg.Activate("missing"), ErrUnknownHook)
	assert.Error(t, reg.Register(New("")))

	bad := New("bad")
	bad.TimeScale = 0
	assert.Error(t, reg.Register(bad))

	err := reg.Load([]Hook{New("x"), New("x")})
	assert.ErrorIs(t, err, ErrDuplicateHook)
	assert.Empty(t, reg.Hooks())
}

func TestLoadClearsPending(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Load([]Hook{New("a")}))
	require.NoError(t, reg.Activate("a"))

	require.NoError(t, reg.Load([]Hook{New("a")}))
	assert.False(t, reg.Pending())
	h, ok := reg.Get("a")
	require.True(t, ok)
	assert.False(t, h.Active)
}

func TestPreUpdateInvertsByXOR(t *testing.T) {
	mirror := New("mirror")
	mirror.InvertInput = true
	mirror2 := New("mirror2")
	mirror2.InvertInput = true

	reg := NewRegistry(nil)
	require.NoError(t, reg.Load([]Hook{mirror, mirror2}))
	pipe := NewPipeline(reg)
	in := locomotion.Intent{MoveAxis: 1, JumpHeld: true}

	assert.Equal(t, in, pipe.PreUpdate(in))

	reg.Activate("mirror")
	pipe.BeginTick()
	assert.Equal(t, locomotion.Intent{MoveAxis: -1, JumpHeld: true}, pipe.PreUpdate(in))

	reg.Activate("mirror2")
	pipe.BeginTick()
	assert.Equal(t, in, pipe.PreUpdate(in))
}

func TestEffectiveParameters(t *testing.T) {
	c := Neutral()
	c.Gravity = 400
	c.Speed = 2000
	base := physics.DefaultParams()

	got := c.Apply(base)
	assert.Equal(t, subpixel.Units(16), got.Gravity)
	assert.Equal(t, base.MaxRunSpeed*2, got.MaxRunSpeed)
	assert.Equal(t, base.Accel*2, got.Accel)
	assert.Equal(t, base.Friction, got.Friction)
	assert.Equal(t, base.TerminalDown, got.TerminalDown)
}

func TestPostUpdate(t *testing.T) {
	slow := New("bullet_time")
	slow.TimeScale = 300
	slow.Active = true
	flip := New("mirror")
	flip.FlipRender = true
	flip.Active = true

	reg := NewRegistry(nil)
	require.NoError(t, reg.Load([]Hook{slow, flip}))
	fx := NewPipeline(reg).PostUpdate()

	assert.True(t, fx.FlipRender)
	assert.Equal(t, subpixel.Ratio(300), fx.TimeScale)
}

func TestHookYAMLDefaults(t *testing.T) {
	var hooks []Hook
	src := `
- id: low_g
  priority: 2
  gravity_multiplier: 0.4
- id: mirror
  invert_input: true
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &hooks))
	require.Len(t, hooks, 2)

	assert.Equal(t, subpixel.Ratio(400), hooks[0].GravityMultiplier)
	assert.Equal(t, subpixel.One, hooks[0].SpeedMultiplier)
	assert.Equal(t, subpixel.One, hooks[0].TimeScale)
	assert.Equal(t, 2, hooks[0].Priority)
	assert.True(t, hooks[1].InvertInput)
	assert.Equal(t, subpixel.One, hooks[1].GravityMultiplier)
}

func junglist() Hook {
	h := New("junglist")
	h.PulseBPM = 174
	h.PulseGravity = 1200
	return h
}

func TestPulseFollowsBeatGrid(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Load([]Hook{junglist()}))
	pipe := NewPipeline(reg)
	require.NoError(t, reg.Activate("junglist"))

	var beats []int
	for tick := 0; tick < ticksPerMinute; tick++ {
		pipe.BeginTick()
		c := pipe.Composite()
		if c.Beat {
			beats = append(beats, tick)
			assert.Equal(t, subpixel.Ratio(1200), c.Gravity, "tick %d", tick)
		} else {
			assert.Equal(t, subpixel.One, c.Gravity, "tick %d", tick)
		}
		assert.Equal(t, c.Beat, pipe.PostUpdate().Beat)
	}

	assert.Len(t, beats, 174)
	assert.Equal(t, []int{0, 21, 42, 63, 83}, beats[:5])
}

func TestPulseComposesWithMultipliers(t *testing.T) {
	low := hook("low_g", 10, 500)
	low.Active = true
	pulse := junglist()
	pulse.Active = true

	reg := NewRegistry(nil)
	require.NoError(t, reg.Load([]Hook{low, pulse}))
	pipe := NewPipeline(reg)

	pipe.BeginTick()
	assert.True(t, pipe.Composite().Beat)
	assert.Equal(t, subpixel.Ratio(600), pipe.Composite().Gravity)

	pipe.BeginTick()
	assert.False(t, pipe.Composite().Beat)
	assert.Equal(t, subpixel.Ratio(500), pipe.Composite().Gravity)
}

func TestPulseRestartsOnReactivation(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Load([]Hook{junglist()}))
	pipe := NewPipeline(reg)

	require.NoError(t, reg.Activate("junglist"))
	for i := 0; i < 10; i++ {
		pipe.BeginTick()
	}
	assert.False(t, pipe.Composite().Beat)

	require.NoError(t, reg.Deactivate("junglist"))
	pipe.BeginTick()
	assert.False(t, pipe.Composite().Beat)
	assert.Equal(t, subpixel.One, pipe.Composite().Gravity)

	require.NoError(t, reg.Activate("junglist"))
	pipe.BeginTick()
	assert.True(t, pipe.Composite().Beat)
}

func TestPulseValidate(t *testing.T) {
	h := junglist()
	require.NoError(t, h.Validate())
	h.PulseBPM = -1
	assert.Error(t, h.Validate())

	var hooks []Hook
	require.NoError(t, yaml.Unmarshal([]byte("- id: plain\n"), &hooks))
	require.Len(t, hooks, 1)
	assert.Equal(t, subpixel.One, hooks[0].PulseGravity)
	assert.Zero(t, hooks[0].PulseBPM)
}
