package system

import (
	"github.com/illdynamics/qommandah-qeen/ecs"
	"github.com/illdynamics/qommandah-qeen/ecs/component"
)

// InputSystem runs the mode-hook input pass over the decoded intent.
type InputSystem struct {
	env *Env
}

func NewInputSystem(env *Env) *InputSystem { return &InputSystem{env: env} }

func (s *InputSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.Effective = s.env.Hooks.PreUpdate(in.Raw.Quantize())
	})
}
