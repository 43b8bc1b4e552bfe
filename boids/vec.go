// Package boids implements the flocking simulation engine: double-buffered
// agent state, all-pairs neighbor evaluation, the three classic steering
// rules, and two interchangeable execution strategies (chunked parallel
// scalar, and struct-of-arrays lane batches).
package boids

import "math"

// Vec2 is a 2D float32 vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the vector magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// LengthSq returns the squared magnitude.
func (v Vec2) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// DistanceSq returns the squared distance to o.
func (v Vec2) DistanceSq(o Vec2) float32 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance to o.
func (v Vec2) Distance(o Vec2) float32 {
	return float32(math.Sqrt(float64(v.DistanceSq(o))))
}

// Normalize returns v scaled to unit length. A zero-length vector
// normalizes to the zero vector rather than propagating NaN.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// ClampLength returns v with its magnitude limited to max.
func (v Vec2) ClampLength(max float32) Vec2 {
	lsq := v.LengthSq()
	if lsq <= max*max {
		return v
	}
	l := float32(math.Sqrt(float64(lsq)))
	return Vec2{v.X / l * max, v.Y / l * max}
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
