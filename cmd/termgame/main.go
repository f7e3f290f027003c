// Command termgame plays a scene inside the terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"easygame/internal/app"
	"easygame/internal/core"
	"easygame/internal/logging"
	_ "easygame/internal/scenes/coins"
	_ "easygame/internal/scenes/crab"
	_ "easygame/internal/scenes/scripted"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := app.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	// The screen owns stdout, so logs only go to a file.
	logger, err := logging.ToFile(cfg.Logging, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := app.NewTerminal(session, screen, core.NewFixedStep(cfg.TPS), logger)
	err = term.Run(ctx)
	screen.Fini()
	if err != nil {
		logger.Error("run", zap.Error(err))
		log.Fatal(err)
	}
}
