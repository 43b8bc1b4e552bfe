package boids

import "math"

// LaneWidth is the number of agents processed together by the vectorized
// strategy. The SoA store pads its tail so its length is always a
// multiple of LaneWidth.
const LaneWidth = 8

// lane is a fixed-width batch of float32 values, one per agent slot.
// Operations are written as plain elementwise loops over the fixed-size
// array so the compiler can keep them branch-free and unrollable.
type lane [LaneWidth]float32

// laneMask selects per-slot between two lanes.
type laneMask [LaneWidth]bool

func laneSplat(v float32) lane {
	var l lane
	for i := range l {
		l[i] = v
	}
	return l
}

func laneLoad(src []float32) lane {
	var l lane
	copy(l[:], src[:LaneWidth])
	return l
}

func (l lane) store(dst []float32) {
	copy(dst[:LaneWidth], l[:])
}

func (l lane) add(o lane) lane {
	for i := range l {
		l[i] += o[i]
	}
	return l
}

func (l lane) sub(o lane) lane {
	for i := range l {
		l[i] -= o[i]
	}
	return l
}

func (l lane) mul(o lane) lane {
	for i := range l {
		l[i] *= o[i]
	}
	return l
}

func (l lane) div(o lane) lane {
	for i := range l {
		l[i] /= o[i]
	}
	return l
}

func (l lane) sqrt() lane {
	for i := range l {
		l[i] = float32(math.Sqrt(float64(l[i])))
	}
	return l
}

// lt is the elementwise l < o compare.
func (l lane) lt(o lane) laneMask {
	var m laneMask
	for i := range l {
		m[i] = l[i] < o[i]
	}
	return m
}

// le is the elementwise l <= o compare.
func (l lane) le(o lane) laneMask {
	var m laneMask
	for i := range l {
		m[i] = l[i] <= o[i]
	}
	return m
}

// gt is the elementwise l > o compare.
func (l lane) gt(o lane) laneMask {
	var m laneMask
	for i := range l {
		m[i] = l[i] > o[i]
	}
	return m
}

// ne is the elementwise l != o compare.
func (l lane) ne(o lane) laneMask {
	var m laneMask
	for i := range l {
		m[i] = l[i] != o[i]
	}
	return m
}

func (m laneMask) and(o laneMask) laneMask {
	for i := range m {
		m[i] = m[i] && o[i]
	}
	return m
}

// sel returns a[i] where the mask is set, b[i] otherwise.
func (m laneMask) sel(a, b lane) lane {
	var l lane
	for i := range l {
		if m[i] {
			l[i] = a[i]
		} else {
			l[i] = b[i]
		}
	}
	return l
}

// ones returns 1 where the mask is set, 0 otherwise; used to count
// neighbors without per-agent branching.
func (m laneMask) ones() lane {
	var l lane
	for i := range l {
		if m[i] {
			l[i] = 1
		}
	}
	return l
}

// laneVec2 is a batch of 2D vectors in struct-of-arrays form.
type laneVec2 struct {
	x, y lane
}

func laneVec2Splat(v Vec2) laneVec2 {
	return laneVec2{laneSplat(v.X), laneSplat(v.Y)}
}

func (v laneVec2) add(o laneVec2) laneVec2 {
	return laneVec2{v.x.add(o.x), v.y.add(o.y)}
}

func (v laneVec2) sub(o laneVec2) laneVec2 {
	return laneVec2{v.x.sub(o.x), v.y.sub(o.y)}
}

func (v laneVec2) mul(s lane) laneVec2 {
	return laneVec2{v.x.mul(s), v.y.mul(s)}
}

func (v laneVec2) div(s lane) laneVec2 {
	return laneVec2{v.x.div(s), v.y.div(s)}
}

func (v laneVec2) lengthSq() lane {
	return v.x.mul(v.x).add(v.y.mul(v.y))
}

func (v laneVec2) length() lane {
	return v.lengthSq().sqrt()
}

// normalize scales each vector to unit length; zero-length slots stay
// zero instead of going NaN, matching the scalar rule.
func (v laneVec2) normalize() laneVec2 {
	length := v.length()
	nonzero := length.gt(laneSplat(0))
	safe := nonzero.sel(length, laneSplat(1))
	n := v.div(safe)
	return laneVec2{nonzero.sel(n.x, laneSplat(0)), nonzero.sel(n.y, laneSplat(0))}
}

// sel returns v where the mask is set, other otherwise.
func (v laneVec2) sel(m laneMask, other laneVec2) laneVec2 {
	return laneVec2{m.sel(v.x, other.x), m.sel(v.y, other.y)}
}

// clampLength limits each vector's magnitude to max.
func (v laneVec2) clampLength(max float32) laneVec2 {
	lsq := v.lengthSq()
	maxLane := laneSplat(max)
	over := lsq.gt(maxLane.mul(maxLane))
	length := lsq.sqrt()
	scaled := laneVec2{maxLane.mul(v.x.div(length)), maxLane.mul(v.y.div(length))}
	return scaled.sel(over, v)
}
