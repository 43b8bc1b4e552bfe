package boids

import (
	"testing"
)

func TestLaneElementwiseOps(t *testing.T) {
	a := lane{1, 2, 3, 4, 5, 6, 7, 8}
	b := laneSplat(2)

	if got := a.add(b); got != (lane{3, 4, 5, 6, 7, 8, 9, 10}) {
		t.Errorf("add = %v", got)
	}
	if got := a.sub(b); got != (lane{-1, 0, 1, 2, 3, 4, 5, 6}) {
		t.Errorf("sub = %v", got)
	}
	if got := a.mul(b); got != (lane{2, 4, 6, 8, 10, 12, 14, 16}) {
		t.Errorf("mul = %v", got)
	}
	if got := a.div(b); got != (lane{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4}) {
		t.Errorf("div = %v", got)
	}
	if got := (lane{4, 9, 16, 25, 36, 49, 64, 81}).sqrt(); got != (lane{2, 3, 4, 5, 6, 7, 8, 9}) {
		t.Errorf("sqrt = %v", got)
	}
}

func TestLaneCompareAndSelect(t *testing.T) {
	a := lane{1, 2, 3, 4, 5, 6, 7, 8}
	b := laneSplat(4)

	lt := a.lt(b)
	want := laneMask{true, true, true, false, false, false, false, false}
	if lt != want {
		t.Errorf("lt = %v, want %v", lt, want)
	}

	le := a.le(b)
	want = laneMask{true, true, true, true, false, false, false, false}
	if le != want {
		t.Errorf("le = %v, want %v", le, want)
	}

	sel := lt.sel(laneSplat(1), laneSplat(0))
	if sel != (lane{1, 1, 1, 0, 0, 0, 0, 0}) {
		t.Errorf("sel = %v", sel)
	}

	if ones := le.ones(); ones != (lane{1, 1, 1, 1, 0, 0, 0, 0}) {
		t.Errorf("ones = %v", ones)
	}
}

// TestLaneNormalizeZeroSlot checks that zero-length slots normalize to
// zero instead of dividing by zero, slot by slot.
func TestLaneNormalizeZeroSlot(t *testing.T) {
	v := laneVec2{
		x: lane{3, 0, 0, 1, 0, 0, 0, 0},
		y: lane{4, 0, 2, 0, 0, 0, 0, 0},
	}

	n := v.normalize()

	wantX := lane{0.6, 0, 0, 1, 0, 0, 0, 0}
	wantY := lane{0.8, 0, 1, 0, 0, 0, 0, 0}
	for i := 0; i < LaneWidth; i++ {
		if !almostEqual(n.x[i], wantX[i], 1e-6) || !almostEqual(n.y[i], wantY[i], 1e-6) {
			t.Errorf("slot %d: (%v, %v), want (%v, %v)", i, n.x[i], n.y[i], wantX[i], wantY[i])
		}
	}
}

func TestLaneVec2ClampLength(t *testing.T) {
	v := laneVec2{
		x: lane{30, 3, 0, 0, 0, 0, 0, 0},
		y: lane{40, 4, 0, 0, 0, 0, 0, 0},
	}

	c := v.clampLength(5)

	// Slot 0 is over the cap and gets rescaled; slot 1 is exactly at the
	// cap and passes through; zero slots stay zero.
	if !almostEqual(c.x[0], 3, 1e-5) || !almostEqual(c.y[0], 4, 1e-5) {
		t.Errorf("slot 0 = (%v, %v), want (3, 4)", c.x[0], c.y[0])
	}
	if !almostEqual(c.x[1], 3, 1e-5) || !almostEqual(c.y[1], 4, 1e-5) {
		t.Errorf("slot 1 = (%v, %v), want (3, 4)", c.x[1], c.y[1])
	}
	if c.x[2] != 0 || c.y[2] != 0 {
		t.Errorf("zero slot changed: (%v, %v)", c.x[2], c.y[2])
	}
}

// TestCloseMask checks the lane neighbor predicate matches the scalar
// one slot by slot: inside the radius is in, coincident is out, outside
// and exactly-on-radius are out.
func TestCloseMask(t *testing.T) {
	self := laneVec2Splat(Vec2{0, 0})
	other := laneVec2{
		x: lane{50, 0, 150, 100, 0.01, 0, 0, 0},
		y: lane{0, 0, 0, 0, 0, 0, 0, 0},
	}

	m := closeMask(self, other, 100)

	want := []struct {
		match bool
		desc  string
	}{
		{true, "inside radius"},
		{false, "coincident"},
		{false, "outside radius"},
		{false, "exactly on radius"},
		{true, "barely apart"},
	}
	for i, w := range want {
		if m[i] != w.match {
			t.Errorf("slot %d (%s) = %v, want %v", i, w.desc, m[i], w.match)
		}
		if got := inPerception(Vec2{0, 0}, Vec2{other.x[i], other.y[i]}, 100); got != m[i] {
			t.Errorf("slot %d (%s): lane %v disagrees with scalar %v", i, w.desc, m[i], got)
		}
	}
}
