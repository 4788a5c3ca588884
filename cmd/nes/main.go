// Command nes runs the emulator core against a ROM file, either in an
// interactive Ebitengine window or headless for scripted/automated runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/claude/nes2a03/internal/config"
	"github.com/claude/nes2a03/internal/console"
	"github.com/claude/nes2a03/internal/display"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "path to an iNES (.nes) ROM file")
		configFile = flag.String("config", "", "path to a configuration file")
		nogui      = flag.Bool("nogui", false, "run headless, for testing or automation")
		frames     = flag.Int("frames", 120, "frames to run before exiting in -nogui mode")
	)
	flag.Parse()

	if *romFile == "" {
		log.Fatal("nes: -rom is required")
	}

	cfg := config.New()
	configPath := *configFile
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	if err := cfg.LoadFromFile(configPath); err != nil {
		log.Printf("nes: config: %v (using defaults)", err)
	}

	romBytes, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("nes: reading ROM: %v", err)
	}

	if *nogui {
		runHeadless(romBytes, *frames)
		return
	}
	if err := runWindowed(romBytes, cfg); err != nil {
		log.Fatalf("nes: %v", err)
	}
}

func runWindowed(romBytes []byte, cfg *config.Config) error {
	host := display.NewEbitenAdapter(cfg)
	nes, err := console.New(romBytes, host)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	go func() {
		for nes.Step() {
		}
	}()

	return host.Run("nes2a03")
}

func runHeadless(romBytes []byte, frameLimit int) {
	host := display.NewHeadlessAdapter()
	host.MaxFrames = frameLimit

	nes, err := console.New(romBytes, host)
	if err != nil {
		log.Fatalf("nes: loading ROM: %v", err)
	}

	steps := 0
	for nes.Step() {
		steps++
	}

	fmt.Printf("nes: ran %d steps, %d frames drawn\n", steps, host.FrameCount())
}
