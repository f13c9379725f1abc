package locomotion

import (
	"fmt"

	"github.com/illdynamics/qommandah-qeen/subpixel"
)

// Tuning holds the player's constants. It is loaded from player.yaml.
type Tuning struct {
	MaxHP             int `yaml:"max_hp"`
	InvulnerableTicks int `yaml:"invulnerable_ticks"`
	HurtTicks         int `yaml:"hurt_ticks"`

	KnockbackX subpixel.Units `yaml:"knockback_x"`
	KnockbackY subpixel.Units `yaml:"knockback_y"`
	// JumpStrength is the upward launch speed of a normal jump.
	JumpStrength subpixel.Units `yaml:"jump_strength"`

	ShootTicks    int `yaml:"shoot_ticks"`
	ShootCooldown int `yaml:"shoot_cooldown"`

	Pogo    PogoTuning    `yaml:"pogo"`
	Jetpack JetpackTuning `yaml:"jetpack"`
}

type PogoTuning struct {
	// Bounce is the vertical velocity set on every landing (negative is up).
	Bounce subpixel.Units `yaml:"bounce"`
	// Bonus is added to Bounce when jump is held at the moment of the bounce.
	Bonus   subpixel.Units `yaml:"bonus"`
	Control subpixel.Ratio `yaml:"control"`
}

type JetpackTuning struct {
	MaxFuel int `yaml:"max_fuel"`
	Burn    int `yaml:"burn"`
	Regen   int `yaml:"regen"`
	// GroundedDelay is how many ticks without thrust must pass before fuel
	// starts regenerating.
	GroundedDelay int            `yaml:"grounded_delay"`
	ThrustAccel   subpixel.Units `yaml:"thrust_accel"`
	HoverGravity  subpixel.Ratio `yaml:"hover_gravity"`
	Control       subpixel.Ratio `yaml:"control"`

	DashSpeed    subpixel.Units `yaml:"dash_speed"`
	DashTicks    int            `yaml:"dash_ticks"`
	DashCooldown int            `yaml:"dash_cooldown"`
	DashBurn     int            `yaml:"dash_burn"`
	// DashMinFuel is the share of MaxFuel that must be exceeded to dash.
	DashMinFuel subpixel.Ratio `yaml:"dash_min_fuel"`
}

// DefaultTuning matches prefabs/player.yaml.
func DefaultTuning() Tuning {
	return Tuning{
		MaxHP:             3,
		InvulnerableTicks: 90,
		HurtTicks:         20,
		KnockbackX:        384,
		KnockbackY:        512,
		JumpStrength:      1024,
		ShootTicks:        8,
		ShootCooldown:     15,
		Pogo: PogoTuning{
			Bounce:  -900,
			Bonus:   -300,
			Control: 750,
		},
		Jetpack: JetpackTuning{
			MaxFuel:       600,
			Burn:          5,
			Regen:         3,
			GroundedDelay: 30,
			ThrustAccel:   48,
			HoverGravity:  250,
			Control:       subpixel.One,
			DashSpeed:     2560,
			DashTicks:     18,
			DashCooldown:  60,
			DashBurn:      2,
			DashMinFuel:   100,
		},
	}
}

// Validate rejects tunings the machine cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.MaxHP <= 0:
		return fmt.Errorf("locomotion: max_hp must be positive, got %d", t.MaxHP)
	case t.Pogo.Bounce >= 0:
		return fmt.Errorf("locomotion: pogo bounce must be negative (up), got %d", t.Pogo.Bounce)
	case t.Pogo.Bonus > 0:
		return fmt.Errorf("locomotion: pogo bonus must not point down, got %d", t.Pogo.Bonus)
	case t.Jetpack.MaxFuel <= 0:
		return fmt.Errorf("locomotion: jetpack max_fuel must be positive, got %d", t.Jetpack.MaxFuel)
	case t.Jetpack.Burn < 0 || t.Jetpack.Regen < 0 || t.Jetpack.GroundedDelay < 0:
		return fmt.Errorf("locomotion: jetpack rates must not be negative")
	case t.Jetpack.DashSpeed < 0 || t.Jetpack.DashTicks < 0 || t.Jetpack.DashCooldown < 0 ||
		t.Jetpack.DashBurn < 0 || t.Jetpack.DashMinFuel < 0:
		return fmt.Errorf("locomotion: jetpack dash settings must not be negative")
	case t.InvulnerableTicks < 0 || t.HurtTicks < 0 || t.ShootTicks < 0 || t.ShootCooldown < 0:
		return fmt.Errorf("locomotion: tick counts must not be negative")
	}
	return nil
}
