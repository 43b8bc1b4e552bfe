package boids

import (
	"testing"

	"gonum.org/v1/gonum/blas/blas32"
)

func benchEngine(b *testing.B, count int, strategy Strategy) {
	b.Helper()
	e, err := New(Options{
		Count:    count,
		Width:    1920,
		Height:   1080,
		Seed:     42,
		Params:   testParams(),
		Strategy: strategy,
	})
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	b.Cleanup(e.Close)

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if err := e.Tick(1.0/60.0, nil); err != nil {
			b.Fatalf("tick: %v", err)
		}
	}
}

func BenchmarkTickScalar256(b *testing.B)  { benchEngine(b, 256, StrategyScalar) }
func BenchmarkTickScalar1024(b *testing.B) { benchEngine(b, 1024, StrategyScalar) }
func BenchmarkTickLane256(b *testing.B)    { benchEngine(b, 256, StrategyLane) }
func BenchmarkTickLane1024(b *testing.B)   { benchEngine(b, 1024, StrategyLane) }

// --- Position advance (pos += vel*dt) over the SoA arrays ---

// Benchmark the position advance with a plain scalar loop
func BenchmarkPositionAdvanceScalar(b *testing.B) {
	size := 4096
	posX := make([]float32, size)
	velX := make([]float32, size)
	for i := range posX {
		posX[i] = float32(i) * 0.1
		velX[i] = float32(i) * 0.01
	}
	dt := float32(1.0 / 60.0)

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range posX {
			posX[i] += velX[i] * dt
		}
	}
}

// Benchmark the position advance with blas32.Axpy
func BenchmarkPositionAdvanceBLAS(b *testing.B) {
	size := 4096
	posX := make([]float32, size)
	velX := make([]float32, size)
	for i := range posX {
		posX[i] = float32(i) * 0.1
		velX[i] = float32(i) * 0.01
	}
	dt := float32(1.0 / 60.0)

	vPos := blas32.Vector{N: size, Inc: 1, Data: posX}
	vVel := blas32.Vector{N: size, Inc: 1, Data: velX}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		// pos = pos + dt*vel
		blas32.Axpy(dt, vVel, vPos)
	}
}

// Benchmark the fixed-width lane add used by the vectorized strategy
func BenchmarkPositionAdvanceLanes(b *testing.B) {
	size := 4096
	posX := make([]float32, size)
	velX := make([]float32, size)
	for i := range posX {
		posX[i] = float32(i) * 0.1
		velX[i] = float32(i) * 0.01
	}
	dtLane := laneSplat(1.0 / 60.0)

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := 0; i < size; i += LaneWidth {
			pos := laneLoad(posX[i:])
			vel := laneLoad(velX[i:])
			pos.add(vel.mul(dtLane)).store(posX[i:])
		}
	}
}
