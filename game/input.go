package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/dmitr101/boids/boids"
	"github.com/dmitr101/boids/config"
)

// handleInput processes keyboard input. All engine mutations happen here,
// between ticks, so the generation contract is never violated mid-tick.
func (g *Game) handleInput() {
	step := config.Cfg().Population.Step

	if rl.IsKeyPressed(rl.KeySpace) {
		g.attracted = !g.attracted
		g.params.Attraction = g.attracted
		g.engine.SetParams(g.params)
	}

	if rl.IsKeyPressed(rl.KeyUp) {
		g.engine.Grow(step)
		slog.Debug("population grown", "boids", g.engine.Len())
	}

	if rl.IsKeyPressed(rl.KeyDown) {
		removed := g.engine.Shrink(step)
		slog.Debug("population shrunk", "removed", removed, "boids", g.engine.Len())
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyS) {
		next := boids.StrategyLane
		if g.engine.Strategy() == boids.StrategyLane {
			next = boids.StrategyScalar
		}
		if err := g.engine.SetStrategy(next); err != nil {
			slog.Error("strategy switch failed", "error", err)
		} else {
			slog.Info("strategy switched", "strategy", string(next))
		}
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.showPanel = !g.showPanel
	}
}
