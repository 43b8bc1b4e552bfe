package boids

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// runAndCount runs the pool over n indices and returns the per-index
// visit counts. Chunks own disjoint index sets, so the counters need no
// synchronization.
func runAndCount(t *testing.T, pool *workerPool, n, minChunk int, partition Partition) []int {
	t.Helper()
	visited := make([]int, n)
	err := pool.run(n, minChunk, partition, func(start, end, stride int) error {
		for i := start; i < end; i += stride {
			visited[i]++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return visited
}

func TestWorkerPoolCoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		minChunk  int
		partition Partition
	}{
		{"contiguous small inline", 10, 64, PartitionContiguous},
		{"contiguous parallel", 1000, 64, PartitionContiguous},
		{"contiguous uneven", 997, 64, PartitionContiguous},
		{"strided parallel", 1000, 64, PartitionStrided},
		{"strided uneven", 997, 64, PartitionStrided},
		{"min chunk caps tasks", 100, 90, PartitionContiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newWorkerPool(4)
			defer pool.stop()

			visited := runAndCount(t, pool, tt.n, tt.minChunk, tt.partition)
			for i, count := range visited {
				if count != 1 {
					t.Fatalf("index %d visited %d times", i, count)
				}
			}
		})
	}
}

// TestWorkerPoolChunksHonorMinChunk records every dispatched chunk and
// verifies none owns fewer than minChunk indices.
func TestWorkerPoolChunksHonorMinChunk(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		minChunk  int
		partition Partition
	}{
		{"contiguous remainder folds into last", 100, 33, PartitionContiguous},
		{"contiguous collapses to one chunk", 100, 90, PartitionContiguous},
		{"strided", 1000, 64, PartitionStrided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newWorkerPool(8)
			defer pool.stop()

			var mu sync.Mutex
			var sizes []int
			err := pool.run(tt.n, tt.minChunk, tt.partition, func(start, end, stride int) error {
				count := 0
				for i := start; i < end; i += stride {
					count++
				}
				mu.Lock()
				sizes = append(sizes, count)
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Fatalf("run: %v", err)
			}

			total := 0
			for _, size := range sizes {
				total += size
				if size < tt.minChunk {
					t.Errorf("chunk of %d indices below minimum %d", size, tt.minChunk)
				}
			}
			if total != tt.n {
				t.Errorf("chunks cover %d indices, want %d", total, tt.n)
			}
		})
	}
}

func TestWorkerPoolZeroAndNegativeN(t *testing.T) {
	pool := newWorkerPool(4)
	defer pool.stop()

	called := false
	err := pool.run(0, 64, PartitionContiguous, func(start, end, stride int) error {
		called = true
		return nil
	})
	if err != nil || called {
		t.Error("n=0 should be a no-op")
	}
}

func TestWorkerPoolSingleWorkerInline(t *testing.T) {
	pool := newWorkerPool(1)
	defer pool.stop()

	// A single worker runs the whole range inline as one chunk.
	var calls int
	err := pool.run(1000, 64, PartitionContiguous, func(start, end, stride int) error {
		calls++
		if start != 0 || end != 1000 || stride != 1 {
			t.Errorf("chunk (%d, %d, %d), want (0, 1000, 1)", start, end, stride)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWorkerPoolErrorPropagation(t *testing.T) {
	pool := newWorkerPool(4)
	defer pool.stop()

	sentinel := errors.New("chunk failed")
	err := pool.run(1000, 64, PartitionContiguous, func(start, end, stride int) error {
		if start <= 500 && 500 < end {
			return fmt.Errorf("index 500: %w", sentinel)
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("expected sentinel error, got %v", err)
	}
}

func TestWorkerPoolReuseAcrossEpisodes(t *testing.T) {
	pool := newWorkerPool(4)
	defer pool.stop()

	// Several fork-join episodes on the same persistent workers.
	for episode := 0; episode < 5; episode++ {
		visited := runAndCount(t, pool, 500, 16, PartitionContiguous)
		for i, count := range visited {
			if count != 1 {
				t.Fatalf("episode %d: index %d visited %d times", episode, i, count)
			}
		}
	}
}

func TestWorkerPoolStopIdempotent(t *testing.T) {
	pool := newWorkerPool(2)
	_ = pool.run(200, 16, PartitionContiguous, func(start, end, stride int) error { return nil })
	pool.stop()
	pool.stop() // second stop must not panic
}
