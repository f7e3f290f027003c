//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"easygame/internal/app"
	"easygame/internal/logging"
	_ "easygame/internal/scenes/coins"
	_ "easygame/internal/scenes/crab"
	_ "easygame/internal/scenes/scripted"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := app.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		logger.Fatal("start session", zap.Error(err))
	}
	defer session.Close()

	game := app.New(session, cfg)
	w := session.World()

	ebiten.SetWindowTitle("easygame - " + session.Scene())
	ebiten.SetTPS(cfg.TPS)
	width := w.Width() * cfg.Scale
	if cfg.ShowHUD {
		width += cfg.HUDWidth
	}
	ebiten.SetWindowSize(width, w.Height()*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("run", zap.Error(err))
	}
}
