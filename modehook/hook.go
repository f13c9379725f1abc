// Package modehook composes gameplay modifiers (low gravity, speed boosts,
// bullet time, mirrored controls) over the base physics parameters.
package modehook

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// Hook is one modifier record. Multipliers default to 1 when left out of
// YAML.
type Hook struct {
	ID                string         `yaml:"id"`
	Active            bool           `yaml:"active"`
	Priority          int            `yaml:"priority"`
	GravityMultiplier subpixel.Ratio `yaml:"gravity_multiplier"`
	SpeedMultiplier   subpixel.Ratio `yaml:"speed_multiplier"`
	TimeScale         subpixel.Ratio `yaml:"time_scale"`
	InvertInput       bool           `yaml:"invert_input"`
	// FlipRender asks the renderer to mirror the scene horizontally.
	FlipRender bool `yaml:"flip_render"`
	// PulseBPM, when positive, makes the hook pulse on a beat grid counted
	// from the tick it was activated. On a beat tick gravity is further
	// scaled by PulseGravity.
	PulseBPM     int            `yaml:"pulse_bpm"`
	PulseGravity subpixel.Ratio `yaml:"pulse_gravity"`
}

// New returns an inactive hook with neutral multipliers.
func New(id string) Hook {
	return Hook{
		ID:                id,
		GravityMultiplier: subpixel.One,
		SpeedMultiplier:   subpixel.One,
		TimeScale:         subpixel.One,
		PulseGravity:      subpixel.One,
	}
}

func (h *Hook) UnmarshalYAML(n *yaml.Node) error {
	type plain Hook
	raw := plain(New(""))
	if err := n.Decode(&raw); err != nil {
		return err
	}
	*h = Hook(raw)
	return nil
}

// Validate rejects hooks that cannot be folded.
func (h Hook) Validate() error {
	if h.ID == "" {
		return fmt.Errorf("modehook: hook id is empty")
	}
	if h.GravityMultiplier < 0 || h.SpeedMultiplier < 0 {
		return fmt.Errorf("modehook: hook %q: negative multiplier", h.ID)
	}
	if h.TimeScale <= 0 {
		return fmt.Errorf("modehook: hook %q: time scale must be positive", h.ID)
	}
	if h.PulseBPM < 0 || h.PulseGravity < 0 {
		return fmt.Errorf("modehook: hook %q: negative pulse setting", h.ID)
	}
	return nil
}
