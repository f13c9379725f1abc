package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/prefabs"
)

func TestPatrolScriptTurnsAtWalls(t *testing.T) {
	rt := NewScriptRuntime(prefabs.LoadScript, nil)
	th, err := rt.Thinker("patrol.tengo")
	require.NoError(t, err)

	assert.Equal(t, 1, th.Steer(physics.View{}).MoveAxis)
	assert.Equal(t, -1, th.Steer(physics.View{Contacts: physics.Contacts{Right: true}}).MoveAxis)
	assert.Equal(t, -1, th.Steer(physics.View{}).MoveAxis, "direction persists in state")
	assert.Equal(t, 1, th.Steer(physics.View{Contacts: physics.Contacts{Left: true}}).MoveAxis)

	other, err := rt.Thinker("patrol.tengo")
	require.NoError(t, err)
	assert.Equal(t, 1, other.Steer(physics.View{}).MoveAxis, "state is per thinker")
}

func TestHopperScriptMatchesBuiltin(t *testing.T) {
	rt := NewScriptRuntime(prefabs.LoadScript, nil)
	script, err := rt.Thinker("hopper.tengo")
	require.NoError(t, err)
	builtin := Hopper(45, 512)

	views := []physics.View{
		{Tick: 45, Body: physics.BodySnapshot{OnGround: true}},
		{Tick: 46, Body: physics.BodySnapshot{OnGround: true}, HasTarget: true, Target: physics.Vec{X: 2000}},
		{Tick: 90, Body: physics.BodySnapshot{Pos: physics.Vec{X: 4000}}, HasTarget: true, Target: physics.Vec{X: 100}},
		{Tick: 90, Body: physics.BodySnapshot{Pos: physics.Vec{X: 4000}}, HasTarget: true, Target: physics.Vec{X: 3800}},
	}
	for _, v := range views {
		assert.Equal(t, builtin.Steer(v), script.Steer(v), "tick %d", v.Tick)
	}
}

func TestScriptErrors(t *testing.T) {
	sources := map[string]string{
		"broken.tengo": `think := func(view, state) {`,
		"nomap.tengo":  `think := func(view, state) { return 3 }`,
		"clock.tengo":  `times := import("times")` + "\n" + `think := func(view, state) { return {} }`,
	}
	loads := 0
	rt := NewScriptRuntime(func(name string) ([]byte, error) {
		loads++
		src, ok := sources[name]
		if !ok {
			return nil, errors.New("missing")
		}
		return []byte(src), nil
	}, nil)

	_, err := rt.Thinker("broken.tengo")
	assert.Error(t, err)
	_, err = rt.Thinker("clock.tengo")
	assert.Error(t, err, "only deterministic modules are importable")
	_, err = rt.Thinker("missing.tengo")
	assert.Error(t, err)

	th, err := rt.Thinker("nomap.tengo")
	require.NoError(t, err)
	assert.Equal(t, physics.Steering{}, th.Steer(physics.View{}))
	assert.Equal(t, physics.Steering{}, th.Steer(physics.View{}))

	before := loads
	_, err = rt.Thinker("nomap.tengo")
	require.NoError(t, err)
	assert.Equal(t, before, loads, "compiled scripts are cached")
	rt.Invalidate("nomap.tengo")
	_, err = rt.Thinker("nomap.tengo")
	require.NoError(t, err)
	assert.Equal(t, before+1, loads)
}

func TestNewThinker(t *testing.T) {
	for _, name := range []string{"patrol", "hopper", "idle", ""} {
		th, err := NewThinker(name)
		require.NoError(t, err, name)
		require.NotNil(t, th)
	}
	_, err := NewThinker("teleport")
	assert.ErrorContains(t, err, "teleport")
}

func TestBuiltinPatrol(t *testing.T) {
	p := Patrol()
	assert.Equal(t, 1, p.Steer(physics.View{}).MoveAxis)
	assert.Equal(t, -1, p.Steer(physics.View{Contacts: physics.Contacts{Right: true}}).MoveAxis)
	assert.Equal(t, -1, p.Steer(physics.View{}).MoveAxis)
}

func TestHopperHoldsInsideSlack(t *testing.T) {
	h := Hopper(0, 512)
	s := h.Steer(physics.View{Tick: 7, Body: physics.BodySnapshot{Pos: physics.Vec{X: 1000}, OnGround: true}, HasTarget: true, Target: physics.Vec{X: 1300}})
	assert.Zero(t, s.MoveAxis)
	assert.True(t, s.Jump, "period zero hops on every grounded tick")
}
