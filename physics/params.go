package physics

import "github.com/illdynamics/qommandah-qeen/subpixel"

// Params is the effective per-tick physics parameter set. Values are already
// scaled by whatever mode hooks are active when they reach Integrate.
type Params struct {
	Gravity      subpixel.Units `yaml:"gravity"`
	TerminalUp   subpixel.Units `yaml:"terminal_up"`
	TerminalDown subpixel.Units `yaml:"terminal_down"`
	Accel        subpixel.Units `yaml:"accel"`
	Friction     subpixel.Units `yaml:"friction"`
	MaxRunSpeed  subpixel.Units `yaml:"max_run_speed"`
}

// DefaultParams mirrors prefabs/physics.yaml so tests and tools have a sane
// baseline without loading files.
func DefaultParams() Params {
	return Params{
		Gravity:      40,
		TerminalUp:   2048,
		TerminalDown: 1536,
		Accel:        64,
		Friction:     48,
		MaxRunSpeed:  768,
	}
}

// Drive carries the per-tick forces a controller wants applied.
type Drive struct {
	// MoveAxis is -1, 0 or 1.
	MoveAxis int
	// Launch replaces this tick's gravity step with LaunchVY.
	Launch   bool
	LaunchVY subpixel.Units
	// Shove sets the horizontal velocity to ShoveVX, skipping accel and friction.
	Shove   bool
	ShoveVX subpixel.Units
}
