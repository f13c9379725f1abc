// Package locomotion is the player's movement state machine: three exclusive
// movement modes, each with its own sub-states, driven by logical input and
// collision results and interrupted by damage.
package locomotion

// Intent is the decoded input for one tick. No device state crosses this
// boundary.
type Intent struct {
	MoveAxis        int  `yaml:"move_axis,omitempty"`
	JumpHeld        bool `yaml:"jump_held,omitempty"`
	JumpPressed     bool `yaml:"jump_pressed,omitempty"`
	ShootPressed    bool `yaml:"shoot_pressed,omitempty"`
	InteractPressed bool `yaml:"interact_pressed,omitempty"`
	// DashPressed starts a jetpack dash; other modes ignore it.
	DashPressed bool `yaml:"dash_pressed,omitempty"`
}

// Quantize clamps MoveAxis into [-1, 1]. A press implies a hold.
func (in Intent) Quantize() Intent {
	switch {
	case in.MoveAxis < 0:
		in.MoveAxis = -1
	case in.MoveAxis > 0:
		in.MoveAxis = 1
	}
	if in.JumpPressed {
		in.JumpHeld = true
	}
	return in
}
