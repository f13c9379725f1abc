package system

import "github.com/illdynamics/qommandah-qeen/ecs"

// ModeHookSystem runs the hooks' post-update pass last in the tick.
type ModeHookSystem struct {
	env *Env
}

func NewModeHookSystem(env *Env) *ModeHookSystem { return &ModeHookSystem{env: env} }

func (s *ModeHookSystem) Update(_ *ecs.World) {
	s.env.Effects = s.env.Hooks.PostUpdate()
}
