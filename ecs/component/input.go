package component

import "github.com/illdynamics/qommandah-qeen/locomotion"

// Input holds this tick's decoded intent before and after mode hooks.
type Input struct {
	Raw       locomotion.Intent
	Effective locomotion.Intent
}

var InputComponent = NewComponent[Input]()
