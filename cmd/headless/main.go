// Command headless steps a scene without a display and reports what is left.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"easygame/internal/app"
	"easygame/internal/logging"
	"easygame/internal/render"
	_ "easygame/internal/scenes/coins"
	_ "easygame/internal/scenes/crab"
	_ "easygame/internal/scenes/scripted"
	"easygame/internal/world"

	"go.uber.org/zap"
)

func main() {
	fs := flag.CommandLine
	frames := fs.Int("frames", 600, "number of frames to simulate")
	ascii := fs.String("ascii", "", "print a final snapshot at COLSxROWS, e.g. 80x30")
	every := fs.Int("report", 0, "print kind counts every N frames (0 disables)")
	cfg, err := app.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	var cols, rows int
	if *ascii != "" {
		cols, rows, err = parseSize(*ascii)
		if err != nil {
			logger.Fatal("snapshot size", zap.Error(err))
		}
	}

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		logger.Fatal("start session", zap.Error(err))
	}
	defer session.Close()

	for i := 1; i <= *frames; i++ {
		if _, err := session.Step(world.Keys{}); err != nil {
			logger.Warn("step", zap.Int("frame", i), zap.Error(err))
		}
		if *every > 0 && i%*every == 0 {
			fmt.Printf("frame %d: %s\n", i, counts(session.World()))
		}
	}

	w := session.World()
	fmt.Printf("%s seed=%d frames=%d: %s\n", session.Scene(), session.Seed(), *frames, counts(w))
	for _, t := range w.Texts() {
		fmt.Printf("text (%d,%d): %s\n", t.X, t.Y, t.Text)
	}

	if *ascii != "" {
		snap := render.NewASCII(cols, rows, w.Width(), w.Height())
		snap.Reset()
		w.Draw(session.Frame(), snap)
		fmt.Print(snap.String())
	}
}

func counts(w *world.World) string {
	var parts []string
	for _, kind := range w.Kinds() {
		parts = append(parts, fmt.Sprintf("%s=%d", kind, w.Count(kind)))
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}

func parseSize(s string) (int, int, error) {
	c, r, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want COLSxROWS", s)
	}
	cols, err := strconv.Atoi(c)
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("size %q: bad column count", s)
	}
	rows, err := strconv.Atoi(r)
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("size %q: bad row count", s)
	}
	return cols, rows, nil
}
