package boids

import (
	"fmt"
	"math/rand"
)

// Strategy selects the execution strategy for a tick. Both strategies
// implement the same steering and integration contracts and produce
// results equal within floating-point tolerance.
type Strategy string

const (
	// StrategyScalar runs per-agent scalar math over chunked parallel
	// index ranges.
	StrategyScalar Strategy = "scalar"
	// StrategyLane runs struct-of-arrays batches of LaneWidth agents
	// with elementwise compare-and-select.
	StrategyLane Strategy = "lane"
)

// Options configure a new engine.
type Options struct {
	Count         int
	Width, Height float32
	Seed          int64
	Params        Params
	Strategy      Strategy
	Workers       int // 0 = GOMAXPROCS
	MinChunkSize  int // 0 = default 64
	Partition     Partition
}

// Engine owns the double-buffered population and drives one tick at a
// time. It is not safe for concurrent use: Tick, Grow, Shrink, Snapshot
// and the setters must all be called from the driving goroutine.
type Engine struct {
	params        Params
	width, height float32
	rng           *rand.Rand

	strategy Strategy
	scalar   *doubleBuffer[*Store]
	lanes    *doubleBuffer[*SoAStore]

	pool      *workerPool
	minChunk  int
	partition Partition

	scratch []Agent // reused by Snapshot in lane mode
}

// New creates an engine with a seeded-random initial population.
func New(opts Options) (*Engine, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("boids: negative population count %d", opts.Count)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("boids: invalid world bounds %vx%v", opts.Width, opts.Height)
	}

	minChunk := opts.MinChunkSize
	if minChunk <= 0 {
		minChunk = 64
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyScalar
	}

	e := &Engine{
		params:    opts.Params,
		width:     opts.Width,
		height:    opts.Height,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		strategy:  strategy,
		pool:      newWorkerPool(opts.Workers),
		minChunk:  minChunk,
		partition: opts.Partition,
	}

	agents := make([]Agent, opts.Count)
	for i := range agents {
		agents[i] = randomAgent(e.rng, e.width, e.height, e.params.MaxSpeed)
	}

	switch strategy {
	case StrategyScalar:
		cur := &Store{agents: agents}
		e.scalar = newDoubleBuffer(cur, NewStore(opts.Count))
	case StrategyLane:
		e.lanes = newDoubleBuffer(SoAFromAgents(agents), NewSoAStore(opts.Count))
	default:
		return nil, fmt.Errorf("boids: unknown strategy %q", strategy)
	}
	return e, nil
}

// Len returns the current population count.
func (e *Engine) Len() int {
	if e.strategy == StrategyLane {
		return e.lanes.Current().Len()
	}
	return e.scalar.Current().Len()
}

// Strategy returns the active execution strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Params returns the active steering parameters.
func (e *Engine) Params() Params {
	return e.params
}

// SetParams replaces the steering parameters. Valid only between ticks.
func (e *Engine) SetParams(p Params) {
	e.params = p
}

// SetStrategy switches the execution strategy, converting the current
// generation between layouts. Valid only between ticks.
func (e *Engine) SetStrategy(s Strategy) error {
	if s == e.strategy {
		return nil
	}
	switch s {
	case StrategyScalar:
		agents := e.lanes.Current().AppendTo(nil)
		e.scalar = newDoubleBuffer(&Store{agents: agents}, NewStore(len(agents)))
		e.lanes = nil
	case StrategyLane:
		agents := e.scalar.Current().Agents()
		e.lanes = newDoubleBuffer(SoAFromAgents(agents), NewSoAStore(len(agents)))
		e.scalar = nil
	default:
		return fmt.Errorf("boids: unknown strategy %q", s)
	}
	e.strategy = s
	return nil
}

// Tick advances the simulation by dt seconds. All steering reads come
// from the current generation, all integrated writes go to the next, and
// the buffers swap once every writer has joined. target is the optional
// attraction point; it only applies when Params.Attraction is set.
//
// On a defect (non-finite state) the tick aborts without swapping and
// the error is returned; the caller is expected to halt the run.
func (e *Engine) Tick(dt float32, target *Vec2) error {
	var err error
	if e.strategy == StrategyLane {
		err = e.tickLanes(dt, target)
	} else {
		err = e.tickScalar(dt, target)
	}
	if err != nil {
		return fmt.Errorf("tick aborted: %w", err)
	}
	return nil
}

// tickScalar runs the chunked parallel scalar strategy. Every task reads
// the full current slice but writes only its own disjoint index set of
// the next slice.
func (e *Engine) tickScalar(dt float32, target *Vec2) error {
	cur := e.scalar.Current().Agents()
	next := e.scalar.Next().Agents()
	p := e.params

	err := e.pool.run(len(cur), e.minChunk, e.partition, func(start, end, stride int) error {
		for i := start; i < end; i += stride {
			acc, err := Accelerate(cur, i, &p, target)
			if err != nil {
				return err
			}
			if err := Integrate(&next[i], &cur[i], acc, dt, e.width, e.height); err != nil {
				return fmt.Errorf("agent %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.scalar.Swap()
	return nil
}

// tickLanes runs the struct-of-arrays strategy, distributing lanes
// across the same worker pool.
func (e *Engine) tickLanes(dt float32, target *Vec2) error {
	cur := e.lanes.Current()
	next := e.lanes.Next()
	p := e.params

	minChunkLanes := e.minChunk / LaneWidth
	if minChunkLanes < 1 {
		minChunkLanes = 1
	}

	err := e.pool.run(cur.NumLanes(), minChunkLanes, e.partition, func(start, end, stride int) error {
		for l := start; l < end; l += stride {
			if err := next.UpdateLane(cur, l, &p, target, dt, e.width, e.height); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.lanes.Swap()
	return nil
}

// Grow appends n newly randomized agents to both generation buffers.
// Valid only between ticks.
func (e *Engine) Grow(n int) {
	if n <= 0 {
		return
	}
	fresh := make([]Agent, n)
	for i := range fresh {
		fresh[i] = randomAgent(e.rng, e.width, e.height, e.params.MaxSpeed)
	}

	if e.strategy == StrategyLane {
		for _, s := range e.lanes.Both() {
			s.AppendAgents(fresh)
		}
		return
	}
	for _, s := range e.scalar.Both() {
		s.agents = append(s.agents, fresh...)
	}
}

// Shrink removes up to n agents from the tail of both buffers and
// returns how many were actually removed; requests beyond the current
// population clamp to an empty population. Valid only between ticks.
func (e *Engine) Shrink(n int) int {
	if n <= 0 {
		return 0
	}
	if count := e.Len(); n > count {
		n = count
	}

	if e.strategy == StrategyLane {
		for _, s := range e.lanes.Both() {
			s.Truncate(n)
		}
		return n
	}
	for _, s := range e.scalar.Both() {
		s.truncate(n)
	}
	return n
}

// Snapshot returns a read-only view of the current generation. The view
// is only valid until the next Tick, Grow, Shrink, or SetStrategy, and
// must never be called concurrently with an in-progress Tick.
func (e *Engine) Snapshot() []Agent {
	if e.strategy == StrategyLane {
		e.scratch = e.lanes.Current().AppendTo(e.scratch[:0])
		return e.scratch
	}
	return e.scalar.Current().Agents()
}

// Close stops the worker pool.
func (e *Engine) Close() {
	e.pool.stop()
}
