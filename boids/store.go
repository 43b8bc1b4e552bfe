package boids

import (
	"math"
	"math/rand"
)

// Agent is one boid's state within a generation. Agents carry no identity
// beyond their slot index, and the index is only stable for one tick.
type Agent struct {
	Pos Vec2
	Vel Vec2
}

// Store owns one generation of agent state as a contiguous slice.
type Store struct {
	agents []Agent
}

// NewStore creates a store of n zero-valued agents.
func NewStore(n int) *Store {
	return &Store{agents: make([]Agent, n)}
}

// Len returns the number of agents in this generation.
func (s *Store) Len() int {
	return len(s.agents)
}

// Agents returns the backing slice. Callers must honor the tick contract:
// the current generation is read-only, the next generation write-only.
func (s *Store) Agents() []Agent {
	return s.agents
}

// truncate drops n agents from the tail.
func (s *Store) truncate(n int) {
	s.agents = s.agents[:len(s.agents)-n]
}

// randomAgent places an agent uniformly in the world with velocity at half
// the speed cap in a uniformly random direction.
func randomAgent(rng *rand.Rand, w, h, maxSpeed float32) Agent {
	angle := rng.Float32() * 2 * math.Pi
	return Agent{
		Pos: Vec2{rng.Float32() * w, rng.Float32() * h},
		Vel: Vec2{
			float32(math.Cos(float64(angle))),
			float32(math.Sin(float64(angle))),
		}.Scale(maxSpeed / 2),
	}
}
