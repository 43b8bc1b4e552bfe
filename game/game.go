// Package game hosts the boids engine: window loop, input, rendering,
// and headless driving. The engine itself knows nothing about raylib.
package game

import (
	"fmt"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dmitr101/boids/boids"
	"github.com/dmitr101/boids/config"
	"github.com/dmitr101/boids/telemetry"
)

// Options configure a game instance.
type Options struct {
	Seed      int64
	OutputDir string
	FixedDT   float32 // headless tick length in seconds
}

// Game wraps the engine with host state.
type Game struct {
	engine *boids.Engine
	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	params    boids.Params // panel working copy, applied between ticks
	attracted bool
	paused    bool
	showPanel bool

	tick         int64
	fixedDT      float32
	tickInFlight bool // perf sample open, closed by Draw

	// perf logging cadence
	ticksPerLog int64
}

// New creates a game from the global config plus options.
func New(opts Options) (*Game, error) {
	cfg := config.Cfg()

	params := boids.Params{
		MaxSpeed:         cfg.Derived.MaxSpeed32,
		MaxForce:         cfg.Derived.MaxForce32,
		PerceptionRadius: cfg.Derived.Perception32,
		SeparationRadius: cfg.Derived.Separation32,
		Attraction:       cfg.Boids.Attraction,
	}

	engine, err := boids.New(boids.Options{
		Count:        cfg.Population.Initial,
		Width:        cfg.Derived.WorldW32,
		Height:       cfg.Derived.WorldH32,
		Seed:         opts.Seed,
		Params:       params,
		Strategy:     boids.Strategy(cfg.Engine.Strategy),
		Workers:      cfg.Engine.Workers,
		MinChunkSize: cfg.Engine.MinChunkSize,
		Partition:    partitionFromConfig(cfg.Engine.Partition),
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		engine.Close()
		return nil, err
	}

	fixedDT := opts.FixedDT
	if fixedDT <= 0 {
		fixedDT = 1.0 / 60.0
	}

	ticksPerLog := int64(cfg.Telemetry.LogInterval / float64(fixedDT))
	if ticksPerLog < 1 {
		ticksPerLog = 1
	}

	return &Game{
		engine:      engine,
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:      output,
		params:      params,
		fixedDT:     fixedDT,
		ticksPerLog: ticksPerLog,
	}, nil
}

func partitionFromConfig(s string) boids.Partition {
	if s == "strided" {
		return boids.PartitionStrided
	}
	return boids.PartitionContiguous
}

// Update advances the simulation by one frame in graphical mode.
// Returns an error only on a fatal engine defect.
func (g *Game) Update() error {
	g.handleInput()

	if g.paused {
		return nil
	}

	dt := rl.GetFrameTime()

	var target *boids.Vec2
	if g.attracted {
		mouse := rl.GetMousePosition()
		target = &boids.Vec2{X: mouse.X, Y: mouse.Y}
	}

	g.perf.StartTick()
	g.perf.StartPhase(telemetry.PhaseTick)
	if err := g.engine.Tick(dt, target); err != nil {
		g.perf.EndTick()
		return err
	}

	g.tick++
	g.tickInFlight = true
	return nil
}

// UpdateHeadless advances the simulation by the fixed dt without any
// raylib dependency.
func (g *Game) UpdateHeadless() error {
	g.perf.StartTick()
	g.perf.StartPhase(telemetry.PhaseTick)
	err := g.engine.Tick(g.fixedDT, nil)
	g.perf.EndTick()
	if err != nil {
		return err
	}

	g.tick++
	g.logPerfWindow()
	return nil
}

// logPerfWindow emits perf stats once per logging window.
func (g *Game) logPerfWindow() {
	if g.tick%g.ticksPerLog != 0 {
		return
	}
	stats := g.perf.Stats()
	slog.Info("perf",
		"tick", g.tick,
		"boids", g.engine.Len(),
		"strategy", string(g.engine.Strategy()),
		"stats", stats,
	)
	if err := g.output.WritePerf(stats.ToCSV(g.tick, g.engine.Len(), string(g.engine.Strategy()))); err != nil {
		slog.Error("failed to write perf record", "error", err)
	}
}

// Draw renders the current generation and the HUD. It closes the perf
// sample opened by Update, so the snapshot and draw phases are
// attributed to the tick they render.
func (g *Game) Draw() {
	g.perf.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	if g.tickInFlight {
		g.perf.StartPhase(telemetry.PhaseSnapshot)
	}
	agents := g.engine.Snapshot()

	if g.tickInFlight {
		g.perf.StartPhase(telemetry.PhaseDraw)
	}
	size := config.Cfg().Derived.BoidSize32
	color := rl.Red
	if g.attracted {
		color = rl.Blue
	}
	for i := range agents {
		drawBoid(&agents[i], size, color)
	}

	g.drawHUD()
	g.drawPanel()

	rl.EndDrawing()

	if g.tickInFlight {
		g.perf.EndTick()
		g.tickInFlight = false
		g.logPerfWindow()
	}
}

// drawBoid draws one agent as a triangle pointing along its velocity.
func drawBoid(a *boids.Agent, size float32, color rl.Color) {
	heading := float32(math.Atan2(float64(a.Vel.Y), float64(a.Vel.X)))
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	// Front point
	frontX := a.Pos.X + cos*size
	frontY := a.Pos.Y + sin*size

	// Back corners
	backAngle := heading + math.Pi*0.8
	backLeftX := a.Pos.X + float32(math.Cos(float64(backAngle)))*size/2
	backLeftY := a.Pos.Y + float32(math.Sin(float64(backAngle)))*size/2

	backAngle = heading - math.Pi*0.8
	backRightX := a.Pos.X + float32(math.Cos(float64(backAngle)))*size/2
	backRightY := a.Pos.Y + float32(math.Sin(float64(backAngle)))*size/2

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
}

// drawHUD draws frame statistics and population info.
func (g *Game) drawHUD() {
	stats := g.perf.Stats()
	rl.DrawText(fmt.Sprintf("FPS: %d", rl.GetFPS()), 10, 10, 20, rl.Black)
	rl.DrawText(fmt.Sprintf("Tick: %s avg", stats.AvgTickDuration), 10, 35, 20, rl.Black)
	rl.DrawText(fmt.Sprintf("Boids: %d", g.engine.Len()), 10, 60, 20, rl.Black)
	rl.DrawText(fmt.Sprintf("Strategy: %s  [S]", g.engine.Strategy()), 10, 85, 20, rl.Black)
	if g.paused {
		rl.DrawText("PAUSED", 10, 110, 20, rl.Maroon)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.tick
}

// Unload releases host resources and stops the engine workers.
func (g *Game) Unload() {
	g.engine.Close()
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
