package sim

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/illdynamics/qommandah-qeen/locomotion"
)

var ErrDiverged = errors.New("sim: replay diverged")

// Frame is one recorded tick: the events queued before it, its intent and
// the checksum of the state it produced.
type Frame struct {
	Intent   locomotion.Intent `yaml:"intent,flow"`
	Events   []Event           `yaml:"events,omitempty"`
	Checksum uint64            `yaml:"checksum"`
}

type Recording struct {
	Level     string  `yaml:"level"`
	StartTick uint64  `yaml:"start_tick"`
	Frames    []Frame `yaml:"frames"`
}

func (r Recording) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

func UnmarshalRecording(data []byte) (Recording, error) {
	var r Recording
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Recording{}, fmt.Errorf("sim: unmarshal recording: %w", err)
	}
	return r, nil
}

// Recorder ticks a simulation and keeps what is needed to replay it.
type Recorder struct {
	sim *Simulation
	rec Recording
}

func NewRecorder(s *Simulation) *Recorder {
	return &Recorder{
		sim: s,
		rec: Recording{Level: s.stage.Name, StartTick: s.tick},
	}
}

func (r *Recorder) Tick(in locomotion.Intent) Snapshot {
	events := slices.Clone(r.sim.queue)
	snap := r.sim.Tick(in)
	r.rec.Frames = append(r.rec.Frames, Frame{Intent: in, Events: events, Checksum: Checksum(snap)})
	return snap
}

func (r *Recorder) Recording() Recording {
	out := r.rec
	out.Frames = slices.Clone(r.rec.Frames)
	return out
}

// Verify replays rec on fresh, which must be at the recording's start tick on
// the same level, and reports the first tick whose checksum differs.
func Verify(fresh *Simulation, rec Recording) error {
	if fresh.stage.Name != rec.Level {
		return fmt.Errorf("sim: recording is for level %q, simulation runs %q", rec.Level, fresh.stage.Name)
	}
	if fresh.tick != rec.StartTick {
		return fmt.Errorf("sim: recording starts at tick %d, simulation is at %d", rec.StartTick, fresh.tick)
	}
	for i, f := range rec.Frames {
		for _, ev := range f.Events {
			if err := fresh.Queue(ev); err != nil {
				return fmt.Errorf("sim: frame %d: %w", i, err)
			}
		}
		snap := fresh.Tick(f.Intent)
		if got := Checksum(snap); got != f.Checksum {
			return fmt.Errorf("%w at tick %d: checksum %016x, recorded %016x", ErrDiverged, snap.Tick, got, f.Checksum)
		}
	}
	return nil
}
