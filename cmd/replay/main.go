// Command replay re-runs a recording headlessly and checks every tick's
// checksum against the recorded one.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/illdynamics/qommandah-qeen/levels"
	"github.com/illdynamics/qommandah-qeen/sim"
)

func main() {
	levelFile := flag.String("level", "", "level file to replay on (default: <recording level>.json)")
	dump := flag.Bool("dump", false, "print the final snapshot as YAML")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: replay [-level file] [-dump] recording.yaml")
		os.Exit(2)
	}

	s, err := run(flag.Arg(0), *levelFile, log)
	if err != nil {
		log.WithError(err).Error("replay failed")
		if errors.Is(err, sim.ErrDiverged) {
			os.Exit(3)
		}
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{"file": flag.Arg(0), "ticks": s.TickCount()}).Info("replay verified")

	if *dump {
		out, err := s.Last().YAML()
		if err != nil {
			log.WithError(err).Fatal("encode snapshot")
		}
		os.Stdout.Write(out)
	}
}

func run(path, levelFile string, log *logrus.Logger) (*sim.Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec, err := sim.UnmarshalRecording(data)
	if err != nil {
		return nil, err
	}
	if levelFile == "" {
		levelFile = rec.Level + ".json"
	}

	cfg, err := sim.LoadConfig(log)
	if err != nil {
		return nil, err
	}
	stage, err := levels.LoadStage(levelFile)
	if err != nil {
		return nil, err
	}
	s, err := sim.New(stage, cfg, log)
	if err != nil {
		return nil, err
	}
	return s, sim.Verify(s, rec)
}
