package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/illdynamics/qommandah-qeen/locomotion"
	"github.com/illdynamics/qommandah-qeen/modehook"
	"github.com/illdynamics/qommandah-qeen/physics"
	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// Spec file names.
const (
	PhysicsFile = "physics.yaml"
	PlayerFile  = "player.yaml"
	HooksFile   = "hooks.yaml"
	EnemiesFile = "enemies.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SizeSpec is a body size in pixels.
type SizeSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (s SizeSpec) Units() (w, h subpixel.Units) {
	return subpixel.FromPixels(s.Width), subpixel.FromPixels(s.Height)
}

func (s SizeSpec) validate(owner string) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("prefabs: %s: size must be positive, got %dx%d", owner, s.Width, s.Height)
	}
	return nil
}

func LoadPhysicsSpec() (physics.Params, error) {
	p, err := LoadSpec[physics.Params](PhysicsFile)
	if err != nil {
		return physics.Params{}, err
	}
	if p.TerminalUp <= 0 || p.TerminalDown <= 0 || p.MaxRunSpeed <= 0 {
		return physics.Params{}, fmt.Errorf("prefabs: %s: terminal and run speeds must be positive", PhysicsFile)
	}
	return p, nil
}

type PlayerSpec struct {
	Name   string            `yaml:"name"`
	Size   SizeSpec          `yaml:"size"`
	Tuning locomotion.Tuning `yaml:"tuning"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Size.validate(PlayerFile); err != nil {
		return nil, err
	}
	if err := spec.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", PlayerFile, err)
	}
	return &spec, nil
}

type HooksSpec struct {
	Hooks []modehook.Hook `yaml:"hooks"`
}

func LoadHooksSpec() ([]modehook.Hook, error) {
	spec, err := LoadSpec[HooksSpec](HooksFile)
	if err != nil {
		return nil, err
	}
	for _, h := range spec.Hooks {
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("prefabs: %s: %w", HooksFile, err)
		}
	}
	return spec.Hooks, nil
}

// EnemySpec describes one enemy archetype. Script names a tengo file under
// scripts/; without it the built-in thinker named by Thinker is used.
type EnemySpec struct {
	Name          string          `yaml:"name"`
	Size          SizeSpec        `yaml:"size"`
	Script        string          `yaml:"script"`
	Thinker       string          `yaml:"thinker"`
	JumpStrength  subpixel.Units  `yaml:"jump_strength"`
	ContactDamage int             `yaml:"contact_damage"`
	Physics       *physics.Params `yaml:"physics"`
}

type EnemiesSpec struct {
	Enemies []EnemySpec `yaml:"enemies"`
}

func LoadEnemiesSpec() ([]EnemySpec, error) {
	spec, err := LoadSpec[EnemiesSpec](EnemiesFile)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(spec.Enemies))
	for _, e := range spec.Enemies {
		if e.Name == "" {
			return nil, fmt.Errorf("prefabs: %s: enemy without name", EnemiesFile)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("prefabs: %s: duplicate enemy %q", EnemiesFile, e.Name)
		}
		seen[e.Name] = true
		if err := e.Size.validate(e.Name); err != nil {
			return nil, err
		}
		if e.Script == "" && e.Thinker == "" {
			return nil, fmt.Errorf("prefabs: %s: enemy %q has neither script nor thinker", EnemiesFile, e.Name)
		}
	}
	return spec.Enemies, nil
}
