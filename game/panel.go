package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawPanel renders the tuning panel and applies any edits to the engine.
// Edits take effect on the next tick.
func (g *Game) drawPanel() {
	if !g.showPanel {
		rl.DrawText("TAB: tuning panel", 10, int32(rl.GetScreenHeight())-30, 20, rl.Gray)
		return
	}

	panelX := float32(rl.GetScreenWidth()) - 330
	panelY := float32(10)

	rl.DrawRectangle(int32(panelX)-10, 0, 340, 250, rl.Fade(rl.LightGray, 0.7))

	changed := false

	rl.DrawText(fmt.Sprintf("Max speed: %.0f", g.params.MaxSpeed), int32(panelX), int32(panelY), 18, rl.Black)
	panelY += 22
	newSpeed := gui.SliderBar(rl.Rectangle{X: panelX + 30, Y: panelY, Width: 250, Height: 18}, "10", "300", g.params.MaxSpeed, 10, 300)
	if newSpeed != g.params.MaxSpeed {
		g.params.MaxSpeed = newSpeed
		changed = true
	}
	panelY += 35

	rl.DrawText(fmt.Sprintf("Max force: %.0f", g.params.MaxForce), int32(panelX), int32(panelY), 18, rl.Black)
	panelY += 22
	newForce := gui.SliderBar(rl.Rectangle{X: panelX + 30, Y: panelY, Width: 250, Height: 18}, "1", "200", g.params.MaxForce, 1, 200)
	if newForce != g.params.MaxForce {
		g.params.MaxForce = newForce
		changed = true
	}
	panelY += 35

	rl.DrawText(fmt.Sprintf("Perception: %.0f", g.params.PerceptionRadius), int32(panelX), int32(panelY), 18, rl.Black)
	panelY += 22
	newPerception := gui.SliderBar(rl.Rectangle{X: panelX + 30, Y: panelY, Width: 250, Height: 18}, "10", "300", g.params.PerceptionRadius, 10, 300)
	if newPerception != g.params.PerceptionRadius {
		g.params.PerceptionRadius = newPerception
		changed = true
	}
	panelY += 35

	rl.DrawText(fmt.Sprintf("Separation: %.0f", g.params.SeparationRadius), int32(panelX), int32(panelY), 18, rl.Black)
	panelY += 22
	newSeparation := gui.SliderBar(rl.Rectangle{X: panelX + 30, Y: panelY, Width: 250, Height: 18}, "5", "200", g.params.SeparationRadius, 5, 200)
	if newSeparation != g.params.SeparationRadius {
		g.params.SeparationRadius = newSeparation
		changed = true
	}
	panelY += 35

	attractLabel := "Attraction: OFF [SPACE]"
	if g.attracted {
		attractLabel = "Attraction: ON [SPACE]"
	}
	if gui.Button(rl.Rectangle{X: panelX + 30, Y: panelY, Width: 250, Height: 24}, attractLabel) {
		g.attracted = !g.attracted
		g.params.Attraction = g.attracted
		changed = true
	}

	if changed {
		g.engine.SetParams(g.params)
	}
}
