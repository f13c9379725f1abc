package sim

import "github.com/illdynamics/qommandah-qeen/subpixel"

// DefaultMaxTicksPerFrame bounds catch-up after a stall.
const DefaultMaxTicksPerFrame = 4

// Stepper converts render frames into whole logical ticks. At time scale One
// every frame runs one tick; at 0.3 three of every ten frames do. Fractions
// accumulate in thousandths so no tick is ever partial.
type Stepper struct {
	MaxTicksPerFrame int
	acc              int64
}

func NewStepper(maxTicksPerFrame int) *Stepper {
	if maxTicksPerFrame <= 0 {
		maxTicksPerFrame = DefaultMaxTicksPerFrame
	}
	return &Stepper{MaxTicksPerFrame: maxTicksPerFrame}
}

// Frame returns how many ticks to run for one render frame. Ticks beyond the
// per-frame cap are dropped, not carried over.
func (st *Stepper) Frame(scale subpixel.Ratio) int {
	if scale <= 0 {
		return 0
	}
	one := int64(subpixel.One)
	st.acc += int64(scale)
	n := st.acc / one
	st.acc -= n * one
	if n > int64(st.MaxTicksPerFrame) {
		n = int64(st.MaxTicksPerFrame)
	}
	return int(n)
}

// Alpha is the interpolation weight, in thousandths, between the last two
// committed ticks for the frame just stepped.
func (st *Stepper) Alpha() subpixel.Ratio {
	return subpixel.Ratio(st.acc)
}

func (st *Stepper) Reset() {
	st.acc = 0
}
