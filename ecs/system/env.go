package system

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/illdynamics/qommandah-qeen/modehook"
	"github.com/illdynamics/qommandah-qeen/physics"
)

// Env is the per-level state every system reads. The simulation owns it and
// only changes Grid, Base or Hooks between ticks.
type Env struct {
	Grid  *physics.Grid
	Base  physics.Params
	Hooks *modehook.Pipeline
	Tick  uint64
	// Effects is written by ModeHookSystem at the end of each tick.
	Effects modehook.Effects
	Log     *logrus.Logger
}

func (e *Env) logger() *logrus.Logger {
	e.Log = orDiscard(e.Log)
	return e.Log
}

func orDiscard(log *logrus.Logger) *logrus.Logger {
	if log != nil {
		return log
	}
	log = logrus.New()
	log.SetOutput(io.Discard)
	return log
}
