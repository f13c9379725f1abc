package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/illdynamics/qommandah-qeen/ecs/entity"
	"github.com/illdynamics/qommandah-qeen/ecs/system"
	"github.com/illdynamics/qommandah-qeen/modehook"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/prefabs"
)

// Config is everything a Simulation needs besides the stage.
type Config struct {
	Base       physics.Params
	Player     entity.PlayerConfig
	Hooks      []modehook.Hook
	Archetypes map[string]entity.Archetype
	// Scripts backs scripted archetypes. It is kept so hot reload can
	// invalidate compiled scripts.
	Scripts *system.ScriptRuntime
}

// LoadConfig reads every spec under prefabs/, preferring files on disk over
// the embedded copies.
func LoadConfig(log *logrus.Logger) (Config, error) {
	base, err := prefabs.LoadPhysicsSpec()
	if err != nil {
		return Config{}, err
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return Config{}, err
	}
	hooks, err := prefabs.LoadHooksSpec()
	if err != nil {
		return Config{}, err
	}
	enemies, err := prefabs.LoadEnemiesSpec()
	if err != nil {
		return Config{}, err
	}

	w, h := player.Size.Units()
	cfg := Config{
		Base:    base,
		Player:  entity.PlayerConfig{W: w, H: h, Tuning: player.Tuning},
		Hooks:   hooks,
		Scripts: system.NewScriptRuntime(prefabs.LoadScript, log),
	}
	cfg.Archetypes = Archetypes(enemies, base, cfg.Scripts, log)
	return cfg, nil
}

// Archetypes resolves enemy specs. A scripted archetype whose script fails to
// build falls back to its built-in thinker.
func Archetypes(specs []prefabs.EnemySpec, base physics.Params, scripts *system.ScriptRuntime, log *logrus.Logger) map[string]entity.Archetype {
	out := make(map[string]entity.Archetype, len(specs))
	for _, spec := range specs {
		w, h := spec.Size.Units()
		params := base
		if spec.Physics != nil {
			params = *spec.Physics
		}
		out[spec.Name] = entity.Archetype{
			Name:          spec.Name,
			W:             w,
			H:             h,
			Params:        params,
			JumpStrength:  spec.JumpStrength,
			ContactDamage: spec.ContactDamage,
			NewSteer:      steerFactory(spec, scripts, log),
		}
	}
	return out
}

func steerFactory(spec prefabs.EnemySpec, scripts *system.ScriptRuntime, log *logrus.Logger) func() (physics.Steerable, error) {
	return func() (physics.Steerable, error) {
		if spec.Script != "" && scripts != nil {
			s, err := scripts.Thinker(spec.Script)
			if err == nil {
				return s, nil
			}
			if spec.Thinker == "" {
				return nil, err
			}
			if log != nil {
				log.WithError(err).WithField("enemy", spec.Name).Warn("script unavailable, using built-in thinker")
			}
		}
		s, err := system.NewThinker(spec.Thinker)
		if err != nil {
			return nil, fmt.Errorf("sim: enemy %s: %w", spec.Name, err)
		}
		return s, nil
	}
}
