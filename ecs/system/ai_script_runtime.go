package system

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/illdynamics/qommandah-qeen/physics"
)

// Scripts define `think := func(view, state) { ... }` returning a map with
// `move` (-1, 0 or 1) and `jump` (bool). `state` is a map private to the
// entity that persists between ticks. Every number handed to the script is an
// integer in subpixel units so scripted enemies stay deterministic.
const aiThinkDispatchScript = `
__out = think(__view, __state)
`

// aiScriptModules leaves out anything that reads the clock, the OS or a
// random source.
var aiScriptModules = []string{"math", "text", "enum"}

const aiScriptMaxAllocs = 1 << 14

// ScriptRuntime compiles enemy scripts once per path and hands out a fresh
// clone per entity.
type ScriptRuntime struct {
	load  func(name string) ([]byte, error)
	log   *logrus.Logger
	mu    sync.Mutex
	cache map[string]*tengo.Compiled
}

func NewScriptRuntime(load func(name string) ([]byte, error), log *logrus.Logger) *ScriptRuntime {
	return &ScriptRuntime{load: load, log: orDiscard(log), cache: map[string]*tengo.Compiled{}}
}

// Invalidate drops a cached compile so the next Thinker call re-reads the
// file. Thinkers already handed out keep their old code.
func (r *ScriptRuntime) Invalidate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, path)
}

func (r *ScriptRuntime) compiled(path string) (*tengo.Compiled, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cache[path]; ok {
		return c, nil
	}

	src, err := r.load(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(append(append([]byte(nil), src...), aiThinkDispatchScript...))
	_ = script.Add("__view", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__out", nil)
	script.SetImports(stdlib.GetModuleMap(aiScriptModules...))
	script.SetMaxAllocs(aiScriptMaxAllocs)

	c, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile %s: %w", path, err)
	}
	r.cache[path] = c
	return c, nil
}

// Thinker returns a steerable backed by the script at path.
func (r *ScriptRuntime) Thinker(path string) (physics.Steerable, error) {
	c, err := r.compiled(path)
	if err != nil {
		return nil, err
	}
	return &scriptThinker{
		path:     path,
		compiled: c.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		log:      r.log.WithField("script", path),
	}, nil
}

type scriptThinker struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	log      *logrus.Entry
	failures int
}

// Steer runs the script once. A failing script stands still for the tick and
// the error is logged the first time only.
func (t *scriptThinker) Steer(v physics.View) physics.Steering {
	out, err := t.run(v)
	if err != nil {
		if t.failures == 0 {
			t.log.WithError(err).Warn("ai script failed")
		}
		t.failures++
		return physics.Steering{}
	}
	return out
}

func (t *scriptThinker) run(v physics.View) (physics.Steering, error) {
	if err := t.compiled.Set("__view", buildAIScriptView(v)); err != nil {
		return physics.Steering{}, err
	}
	if err := t.compiled.Set("__state", t.state); err != nil {
		return physics.Steering{}, err
	}
	if err := t.compiled.Run(); err != nil {
		return physics.Steering{}, err
	}

	res := t.compiled.Get("__out").Map()
	if res == nil {
		return physics.Steering{}, fmt.Errorf("ai: %s: think must return a map", t.path)
	}
	var s physics.Steering
	if mv, ok := res["move"].(int64); ok {
		s.MoveAxis = int(max(-1, min(1, mv)))
	}
	if j, ok := res["jump"].(bool); ok {
		s.Jump = j
	}
	return s, nil
}

func buildAIScriptView(v physics.View) *tengo.ImmutableMap {
	intObj := func(n int64) tengo.Object { return &tengo.Int{Value: n} }
	boolObj := func(b bool) tengo.Object {
		if b {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"tick":       intObj(int64(v.Tick)),
		"x":          intObj(int64(v.Body.Pos.X)),
		"y":          intObj(int64(v.Body.Pos.Y)),
		"vx":         intObj(int64(v.Body.Vel.X)),
		"vy":         intObj(int64(v.Body.Vel.Y)),
		"w":          intObj(int64(v.Body.W)),
		"h":          intObj(int64(v.Body.H)),
		"on_ground":  boolObj(v.Body.OnGround),
		"hit_left":   boolObj(v.Contacts.Left),
		"hit_right":  boolObj(v.Contacts.Right),
		"hit_top":    boolObj(v.Contacts.Top),
		"hit_bottom": boolObj(v.Contacts.Bottom),
		"has_target": boolObj(v.HasTarget),
		"target_x":   intObj(int64(v.Target.X)),
		"target_y":   intObj(int64(v.Target.Y)),
	}}
}
