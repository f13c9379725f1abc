package locomotion

import "fmt"

// Mode is the top-level movement mode. At most one of Pogo and Jetpack is
// active at a time; Normal is the fallback.
type Mode uint8

const (
	Normal Mode = iota
	Pogo
	Jetpack
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Pogo:
		return "pogo"
	case Jetpack:
		return "jetpack"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode maps a mode name back to its value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "normal":
		return Normal, nil
	case "pogo":
		return Pogo, nil
	case "jetpack":
		return Jetpack, nil
	}
	return Normal, fmt.Errorf("locomotion: unknown mode %q", s)
}

// SubState is the mode-specific state. Each mode only ever uses its own
// block of values. Shooting is an overlay flag on the snapshot, not a state.
type SubState uint8

const (
	Idle SubState = iota
	Run
	Jump
	Fall
	Hurt
	Dead

	PogoIdle
	PogoJump
	PogoLand

	JetpackIdle
	JetpackThrust
	JetpackHover
	JetpackFall
	JetpackDash
)

var subStateNames = [...]string{
	Idle:          "idle",
	Run:           "run",
	Jump:          "jump",
	Fall:          "fall",
	Hurt:          "hurt",
	Dead:          "dead",
	PogoIdle:      "pogoIdle",
	PogoJump:      "pogoJump",
	PogoLand:      "pogoLand",
	JetpackIdle:   "jetpackIdle",
	JetpackThrust: "jetpackThrust",
	JetpackHover:  "jetpackHover",
	JetpackFall:   "jetpackFall",
	JetpackDash:   "jetpackDash",
}

func (s SubState) String() string {
	if int(s) < len(subStateNames) {
		return subStateNames[s]
	}
	return fmt.Sprintf("substate(%d)", uint8(s))
}

// Mode returns the mode a sub-state belongs to.
func (s SubState) Mode() Mode {
	switch {
	case s >= JetpackIdle:
		return Jetpack
	case s >= PogoIdle:
		return Pogo
	}
	return Normal
}
