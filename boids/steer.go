package boids

import (
	"errors"
	"fmt"
)

// ErrNotFinite reports a non-finite acceleration, velocity, or position.
// It signals a defect in the inputs (e.g. a NaN velocity), not a
// recoverable condition; the tick that produced it is aborted unswapped.
var ErrNotFinite = errors.New("boids: non-finite value")

// Params are the tunable steering parameters. They are constant within a
// run and may only change between ticks.
type Params struct {
	MaxSpeed         float32
	MaxForce         float32
	PerceptionRadius float32
	SeparationRadius float32
	Attraction       bool
}

// inPerception reports whether other is in self's perception set. The
// comparison is done on squared distances; the > 0 lower bound excludes
// self and degenerate zero-distance neighbors.
func inPerception(self, other Vec2, radius float32) bool {
	dsq := self.DistanceSq(other)
	return dsq < radius*radius && dsq > 0
}

// alignment steers toward the average velocity of perception-set
// neighbors. Empty neighbor set contributes the zero vector.
func alignment(agents []Agent, selfIdx int, p *Params) Vec2 {
	self := &agents[selfIdx]
	var sum Vec2
	total := 0

	for i := range agents {
		if i == selfIdx {
			continue
		}
		if inPerception(self.Pos, agents[i].Pos, p.PerceptionRadius) {
			sum = sum.Add(agents[i].Vel)
			total++
		}
	}

	if total == 0 {
		return Vec2{}
	}
	steer := sum.Scale(1 / float32(total))
	steer = steer.Normalize().Scale(p.MaxSpeed)
	steer = steer.Sub(self.Vel)
	return steer.ClampLength(p.MaxForce)
}

// cohesion steers toward the average position of perception-set
// neighbors. Empty neighbor set contributes the zero vector.
func cohesion(agents []Agent, selfIdx int, p *Params) Vec2 {
	self := &agents[selfIdx]
	var sum Vec2
	total := 0

	for i := range agents {
		if i == selfIdx {
			continue
		}
		if inPerception(self.Pos, agents[i].Pos, p.PerceptionRadius) {
			sum = sum.Add(agents[i].Pos)
			total++
		}
	}

	if total == 0 {
		return Vec2{}
	}
	steer := sum.Scale(1 / float32(total))
	steer = steer.Sub(self.Pos)
	steer = steer.Normalize().Scale(p.MaxSpeed)
	steer = steer.Sub(self.Vel)
	return steer.ClampLength(p.MaxForce)
}

// separation steers away from separation-set neighbors, each weighted by
// the inverse of its distance. Empty neighbor set contributes the zero
// vector.
func separation(agents []Agent, selfIdx int, p *Params) Vec2 {
	self := &agents[selfIdx]
	var sum Vec2
	total := 0

	for i := range agents {
		if i == selfIdx {
			continue
		}
		dist := self.Pos.Distance(agents[i].Pos)
		if dist < p.SeparationRadius && dist > 0 {
			diff := self.Pos.Sub(agents[i].Pos).Normalize().Scale(1 / dist)
			sum = sum.Add(diff)
			total++
		}
	}

	if total == 0 {
		return Vec2{}
	}
	steer := sum.Scale(1 / float32(total))
	steer = steer.Normalize().Scale(p.MaxSpeed)
	steer = steer.Sub(self.Vel)
	return steer.ClampLength(p.MaxForce)
}

// Accelerate combines the three steering rules, plus the optional point
// attraction, into one acceleration for agent selfIdx. The attraction
// term is an external force and is deliberately not clamped to MaxForce.
// A non-finite result is a defect and fails fast.
func Accelerate(agents []Agent, selfIdx int, p *Params, target *Vec2) (Vec2, error) {
	acc := alignment(agents, selfIdx, p)
	acc = acc.Add(cohesion(agents, selfIdx, p))
	acc = acc.Add(separation(agents, selfIdx, p))

	if p.Attraction && target != nil {
		attraction := target.Sub(agents[selfIdx].Pos).Normalize().Scale(p.MaxSpeed)
		acc = acc.Add(attraction)
	}

	if !acc.IsFinite() {
		return Vec2{}, fmt.Errorf("%w: acceleration (%v, %v) for agent %d", ErrNotFinite, acc.X, acc.Y, selfIdx)
	}
	return acc, nil
}
