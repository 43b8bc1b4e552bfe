package boids

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}

func vecAlmostEqual(a, b Vec2, tol float32) bool {
	return almostEqual(a.X, b.X, tol) && almostEqual(a.Y, b.Y, tol)
}

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want Vec2
	}{
		{"unit x", Vec2{1, 0}, Vec2{1, 0}},
		{"3-4-5", Vec2{3, 4}, Vec2{0.6, 0.8}},
		{"negative", Vec2{0, -2}, Vec2{0, -1}},
		{"zero stays zero", Vec2{0, 0}, Vec2{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalize()
			if !vecAlmostEqual(got, tt.want, 1e-6) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestVec2ClampLength(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		max  float32
		want Vec2
	}{
		{"under cap unchanged", Vec2{3, 4}, 10, Vec2{3, 4}},
		{"at cap unchanged", Vec2{3, 4}, 5, Vec2{3, 4}},
		{"over cap scaled", Vec2{30, 40}, 5, Vec2{3, 4}},
		{"zero unchanged", Vec2{0, 0}, 5, Vec2{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.ClampLength(tt.max)
			if !vecAlmostEqual(got, tt.want, 1e-5) {
				t.Errorf("ClampLength(%v, %v) = %v, want %v", tt.v, tt.max, got, tt.want)
			}
		})
	}
}

func TestVec2Distance(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{4, 6}

	if d := a.Distance(b); !almostEqual(d, 5, 1e-6) {
		t.Errorf("Distance = %v, want 5", d)
	}
	if dsq := a.DistanceSq(b); !almostEqual(dsq, 25, 1e-5) {
		t.Errorf("DistanceSq = %v, want 25", dsq)
	}
}

func TestVec2IsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name string
		v    Vec2
		want bool
	}{
		{"finite", Vec2{1, -2}, true},
		{"zero", Vec2{}, true},
		{"nan x", Vec2{nan, 0}, false},
		{"inf y", Vec2{0, inf}, false},
		{"neg inf", Vec2{float32(math.Inf(-1)), 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
