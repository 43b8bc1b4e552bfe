package boids

import (
	"errors"
	"runtime"
	"sync"
)

// parallelThreshold is the minimum work-item count to use parallel
// processing. Below this, single-threaded is faster due to goroutine
// overhead.
const parallelThreshold = 64

// Partition selects how the index range is split across workers. Both
// layouts produce identical output; the split only affects throughput
// (contiguous ranges keep adjacent writers on separate cache lines,
// strided ranges mimic a naive round-robin split).
type Partition int

const (
	PartitionContiguous Partition = iota
	PartitionStrided
)

// chunkFunc processes the indices start, start+stride, ... below end.
// Implementations must write only to output slots in that set.
type chunkFunc func(start, end, stride int) error

// workChunk is one task for a worker.
type workChunk struct {
	start, end, stride int
	fn                 chunkFunc
}

// workerPool runs fork-join episodes over index ranges on a fixed set of
// persistent goroutines, one episode per simulation tick.
type workerPool struct {
	numWorkers int

	workChan chan workChunk
	doneChan chan error
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &workerPool{numWorkers: numWorkers}
}

// start launches the persistent worker goroutines.
func (p *workerPool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan error, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *workerPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *workerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.doneChan <- chunk.fn(chunk.start, chunk.end, chunk.stride)
		}
	}
}

// run executes fn over [0, n) as one fork-join episode and returns the
// combined errors of all chunks. Each dispatched chunk covers a disjoint
// index set, so chunk writers never overlap. The join completes before
// run returns; the caller swaps buffers only after that.
func (p *workerPool) run(n, minChunk int, partition Partition, fn chunkFunc) error {
	if n <= 0 {
		return nil
	}
	if minChunk < 1 {
		minChunk = 1
	}

	// Single-threaded for small batches.
	if n < parallelThreshold || p.numWorkers == 1 {
		return fn(0, n, 1)
	}

	// Floor division caps the task count so every task owns at least
	// minChunk indices; with one task left, run inline.
	numTasks := p.numWorkers
	if max := n / minChunk; numTasks > max {
		numTasks = max
	}
	if numTasks <= 1 {
		return fn(0, n, 1)
	}

	if !p.running {
		p.start()
	}

	dispatched := 0
	switch partition {
	case PartitionStrided:
		// Task t owns indices t, t+numTasks, t+2*numTasks, ...
		for t := 0; t < numTasks; t++ {
			p.workChan <- workChunk{start: t, end: n, stride: numTasks, fn: fn}
			dispatched++
		}
	default:
		// The last task absorbs the remainder, so no chunk dips below
		// minChunk.
		chunkSize := n / numTasks
		for t := 0; t < numTasks; t++ {
			start := t * chunkSize
			end := start + chunkSize
			if t == numTasks-1 {
				end = n
			}
			p.workChan <- workChunk{start: start, end: end, stride: 1, fn: fn}
			dispatched++
		}
	}

	// Join: wait for every chunk before the driver may swap.
	var errs []error
	for i := 0; i < dispatched; i++ {
		if err := <-p.doneChan; err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
