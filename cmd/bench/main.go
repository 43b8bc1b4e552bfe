// Command bench runs headless throughput sweeps over population sizes
// and execution strategies, and writes a CSV summary.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/dmitr101/boids/boids"
	"github.com/dmitr101/boids/config"
	"github.com/dmitr101/boids/telemetry"
)

// benchRow is one (population, strategy) cell of the sweep.
type benchRow struct {
	Boids       int     `csv:"boids"`
	Strategy    string  `csv:"strategy"`
	Workers     int     `csv:"workers"`
	Ticks       int     `csv:"ticks"`
	MeanTickUS  int64   `csv:"mean_tick_us"`
	StdTickUS   int64   `csv:"std_tick_us"`
	P50TickUS   int64   `csv:"p50_tick_us"`
	P90TickUS   int64   `csv:"p90_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	sizes := flag.String("sizes", "100,500,1000,2000,4000", "Comma-separated population sizes")
	strategies := flag.String("strategies", "scalar,lane", "Comma-separated strategies to sweep")
	ticks := flag.Int("ticks", 500, "Measured ticks per cell")
	warmup := flag.Int("warmup", 50, "Warmup ticks per cell (not measured)")
	seed := flag.Int64("seed", 42, "RNG seed, shared across cells")
	workers := flag.Int("workers", 0, "Worker goroutines, 0 = GOMAXPROCS")
	out := flag.String("out", "", "CSV output path (empty = stdout)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	populations, err := parseSizes(*sizes)
	if err != nil {
		slog.Error("bad -sizes", "error", err)
		os.Exit(1)
	}

	params := boids.Params{
		MaxSpeed:         cfg.Derived.MaxSpeed32,
		MaxForce:         cfg.Derived.MaxForce32,
		PerceptionRadius: cfg.Derived.Perception32,
		SeparationRadius: cfg.Derived.Separation32,
	}

	const dt = float32(1.0 / 60.0)

	var rows []benchRow
	for _, n := range populations {
		for _, strat := range strings.Split(*strategies, ",") {
			strat = strings.TrimSpace(strat)

			samples, err := runCell(n, boids.Strategy(strat), *workers, *warmup, *ticks, *seed, params, cfg, dt)
			if err != nil {
				slog.Error("cell failed", "boids", n, "strategy", strat, "error", err)
				os.Exit(1)
			}

			sum := telemetry.Summarize(samples)
			var tps float64
			if sum.Mean > 0 {
				tps = float64(time.Second) / float64(sum.Mean)
			}
			rows = append(rows, benchRow{
				Boids:       n,
				Strategy:    strat,
				Workers:     *workers,
				Ticks:       *ticks,
				MeanTickUS:  sum.Mean.Microseconds(),
				StdTickUS:   sum.StdDev.Microseconds(),
				P50TickUS:   sum.P50.Microseconds(),
				P90TickUS:   sum.P90.Microseconds(),
				MinTickUS:   sum.Min.Microseconds(),
				MaxTickUS:   sum.Max.Microseconds(),
				TicksPerSec: tps,
			})

			slog.Info("cell done",
				"boids", n,
				"strategy", strat,
				"mean", sum.Mean,
				"p90", sum.P90,
			)
		}
	}

	if err := writeRows(rows, *out); err != nil {
		slog.Error("failed to write results", "error", err)
		os.Exit(1)
	}
}

// runCell times ticks for one population/strategy combination.
func runCell(n int, strat boids.Strategy, workers, warmup, ticks int, seed int64, params boids.Params, cfg *config.Config, dt float32) ([]time.Duration, error) {
	engine, err := boids.New(boids.Options{
		Count:        n,
		Width:        cfg.Derived.WorldW32,
		Height:       cfg.Derived.WorldH32,
		Seed:         seed,
		Params:       params,
		Strategy:     strat,
		Workers:      workers,
		MinChunkSize: cfg.Engine.MinChunkSize,
	})
	if err != nil {
		return nil, err
	}
	defer engine.Close()

	for i := 0; i < warmup; i++ {
		if err := engine.Tick(dt, nil); err != nil {
			return nil, err
		}
	}

	samples := make([]time.Duration, 0, ticks)
	for i := 0; i < ticks; i++ {
		start := time.Now()
		if err := engine.Tick(dt, nil); err != nil {
			return nil, err
		}
		samples = append(samples, time.Since(start))
	}
	return samples, nil
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", part, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("negative population %d", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func writeRows(rows []benchRow, path string) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	return gocsv.Marshal(rows, w)
}
