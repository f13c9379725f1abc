package main

import (
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/illdynamics/qommandah-qeen/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlays")
	levelName := flag.String("level", common.DefaultLevel, "level file in levels/")
	record := flag.String("record", "", "write a replay recording to this file on exit")
	noWatch := flag.Bool("nowatch", false, "disable hot reload of prefabs, scripts and levels")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	game, err := NewGame(Options{
		Level:  *levelName,
		Debug:  *debug,
		Record: *record,
		Watch:  !*noWatch,
		Logger: log,
	})
	if err != nil {
		log.WithError(err).Fatal("start")
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth*2, common.BaseHeight*2)
	ebiten.SetWindowTitle("qommandah qeen")
	ebiten.SetTPS(common.TPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Fatal("run")
	}
}
