package boids

import (
	"errors"
	"math"
	"testing"
)

func TestIntegrate(t *testing.T) {
	src := Agent{Pos: Vec2{5, 5}, Vel: Vec2{1, 0}}
	var out Agent

	err := Integrate(&out, &src, Vec2{0, 2}, 1, 100, 100)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if !vecAlmostEqual(out.Vel, Vec2{1, 2}, 1e-6) {
		t.Errorf("vel = %v, want (1, 2)", out.Vel)
	}
	if !vecAlmostEqual(out.Pos, Vec2{6, 7}, 1e-6) {
		t.Errorf("pos = %v, want (6, 7)", out.Pos)
	}
	// Source is never mutated.
	if src.Pos != (Vec2{5, 5}) || src.Vel != (Vec2{1, 0}) {
		t.Errorf("source mutated: %+v", src)
	}
}

func TestIntegrateZeroDT(t *testing.T) {
	src := Agent{Pos: Vec2{5, 5}, Vel: Vec2{3, 4}}
	var out Agent

	if err := Integrate(&out, &src, Vec2{100, 100}, 0, 100, 100); err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if out != src {
		t.Errorf("dt=0 should be a no-op, got %+v", out)
	}
}

func TestIntegrateWrap(t *testing.T) {
	tests := []struct {
		name    string
		pos     Vec2
		vel     Vec2
		wantPos Vec2
	}{
		{"exit right", Vec2{99, 50}, Vec2{5, 0}, Vec2{0, 50}},
		{"exit left", Vec2{1, 50}, Vec2{-5, 0}, Vec2{100, 50}},
		{"exit bottom", Vec2{50, 99}, Vec2{0, 5}, Vec2{50, 0}},
		{"exit top", Vec2{50, 1}, Vec2{0, -5}, Vec2{50, 100}},
		{"interior untouched", Vec2{50, 50}, Vec2{5, 5}, Vec2{55, 55}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := Agent{Pos: tt.pos, Vel: tt.vel}
			var out Agent
			if err := Integrate(&out, &src, Vec2{}, 1, 100, 100); err != nil {
				t.Fatalf("Integrate: %v", err)
			}
			if !vecAlmostEqual(out.Pos, tt.wantPos, 1e-5) {
				t.Errorf("pos = %v, want %v", out.Pos, tt.wantPos)
			}
		})
	}
}

func TestIntegrateNonFinite(t *testing.T) {
	src := Agent{Pos: Vec2{5, 5}, Vel: Vec2{1, 0}}
	var out Agent

	nan := float32(math.NaN())
	err := Integrate(&out, &src, Vec2{nan, 0}, 1, 100, 100)
	if !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite for NaN acceleration, got %v", err)
	}

	inf := float32(math.Inf(1))
	err = Integrate(&out, &src, Vec2{inf, 0}, 1, 100, 100)
	if !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite for Inf acceleration, got %v", err)
	}
}
