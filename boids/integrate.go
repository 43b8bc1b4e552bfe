package boids

import "fmt"

// Integrate advances one agent by dt under the given acceleration and
// writes the result into out, which belongs to the next generation. The
// source agent is read from the current generation, never mutated.
//
// Edge handling is a teleport wrap: an agent leaving one edge reappears
// at the opposite edge. dt = 0 is valid and yields no change; extreme dt
// is the caller's responsibility beyond the finiteness checks.
func Integrate(out *Agent, src *Agent, acc Vec2, dt, width, height float32) error {
	vel := src.Vel.Add(acc.Scale(dt))
	if !vel.IsFinite() {
		return fmt.Errorf("%w: velocity (%v, %v)", ErrNotFinite, vel.X, vel.Y)
	}

	pos := src.Pos.Add(vel.Scale(dt))
	if !pos.IsFinite() {
		return fmt.Errorf("%w: position (%v, %v)", ErrNotFinite, pos.X, pos.Y)
	}

	out.Pos = wrap(pos, width, height)
	out.Vel = vel
	return nil
}

// wrap teleports a position across world edges.
func wrap(p Vec2, width, height float32) Vec2 {
	if p.X > width {
		p.X = 0
	} else if p.X < 0 {
		p.X = width
	}
	if p.Y > height {
		p.Y = 0
	} else if p.Y < 0 {
		p.Y = height
	}
	return p
}
