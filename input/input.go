// Package input decodes keyboard and gamepad state into a locomotion.Intent.
// Analog values are quantized here so no float reaches the simulation.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/illdynamics/qommandah-qeen/locomotion"
)

// StickDeadzone is the left stick magnitude below which the axis reads zero.
const StickDeadzone = 0.3

// Raw is one frame of device state.
type Raw struct {
	Left, Right     bool
	StickX          float64
	JumpHeld        bool
	JumpPressed     bool
	ShootPressed    bool
	InteractPressed bool
	DashPressed     bool
}

// Decode quantizes raw device state. Keyboard and stick directions that
// disagree cancel out.
func Decode(r Raw) locomotion.Intent {
	axis := 0
	if r.Left {
		axis--
	}
	if r.Right {
		axis++
	}
	switch {
	case r.StickX <= -StickDeadzone:
		axis--
	case r.StickX >= StickDeadzone:
		axis++
	}
	return locomotion.Intent{
		MoveAxis:        axis,
		JumpHeld:        r.JumpHeld,
		JumpPressed:     r.JumpPressed,
		ShootPressed:    r.ShootPressed,
		InteractPressed: r.InteractPressed,
		DashPressed:     r.DashPressed,
	}.Quantize()
}

// Decoder polls ebiten once per tick. Presses seen on frames that ran no tick
// are latched until the next Next call so slow time scales do not eat them.
type Decoder struct {
	latched Raw
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Poll reads the devices for this frame.
func (d *Decoder) Poll() {
	r := Raw{
		Left:            ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		Right:           ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
		JumpHeld:        ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed:     inpututil.IsKeyJustPressed(ebiten.KeySpace),
		ShootPressed:    inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		InteractPressed: inpututil.IsKeyJustPressed(ebiten.KeyE) || inpututil.IsKeyJustPressed(ebiten.KeyUp),
		DashPressed:     inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyK),
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		r.StickX = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		r.Left = r.Left || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		r.Right = r.Right || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		r.JumpHeld = r.JumpHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		r.JumpPressed = r.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		r.ShootPressed = r.ShootPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		r.InteractPressed = r.InteractPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		r.DashPressed = r.DashPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
	}

	d.Feed(r)
}

// Feed merges a frame of raw state into the latch. Held state and the axis
// always follow the latest frame; presses accumulate.
func (d *Decoder) Feed(r Raw) {
	d.latched.Left, d.latched.Right = r.Left, r.Right
	d.latched.StickX = r.StickX
	d.latched.JumpHeld = r.JumpHeld
	d.latched.JumpPressed = d.latched.JumpPressed || r.JumpPressed
	d.latched.ShootPressed = d.latched.ShootPressed || r.ShootPressed
	d.latched.InteractPressed = d.latched.InteractPressed || r.InteractPressed
	d.latched.DashPressed = d.latched.DashPressed || r.DashPressed
}

// Next returns the intent for one tick and consumes the latched presses.
func (d *Decoder) Next() locomotion.Intent {
	in := Decode(d.latched)
	d.latched.JumpPressed = false
	d.latched.ShootPressed = false
	d.latched.InteractPressed = false
	d.latched.DashPressed = false
	return in
}
