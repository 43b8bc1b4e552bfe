package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dmitr101/boids/config"
	"github.com/dmitr101/boids/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	count := flag.Int("count", 0, "Initial boid count (0 = use config)")
	strategy := flag.String("strategy", "", "Execution strategy: scalar or lane (empty = use config)")
	workers := flag.Int("workers", -1, "Worker goroutines, 0 = GOMAXPROCS (-1 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	dt := flag.Float64("dt", 1.0/60.0, "Fixed tick length in seconds (headless mode)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *count > 0 {
		cfg.Population.Initial = *count
	}
	if *strategy != "" {
		cfg.Engine.Strategy = *strategy
	}
	if *workers >= 0 {
		cfg.Engine.Workers = *workers
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Snapshot the effective config alongside the CSV output
	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			slog.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
		if err := cfg.WriteYAML(filepath.Join(*outputDir, "config.yaml")); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
			os.Exit(1)
		}
	}

	opts := game.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		FixedDT:   float32(*dt),
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.New(opts)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"boids", cfg.Population.Initial,
			"strategy", cfg.Engine.Strategy,
			"max_ticks", *maxTicks,
		)

		for {
			if err := g.UpdateHeadless(); err != nil {
				slog.Error("simulation defect", "error", err, "tick", g.Tick())
				os.Exit(1)
			}

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	} else {
		// Graphical mode
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Boids")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g, err := game.New(opts)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		for !rl.WindowShouldClose() {
			if err := g.Update(); err != nil {
				slog.Error("simulation defect", "error", err, "tick", g.Tick())
				break
			}
			g.Draw()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				break
			}
		}
	}
}
