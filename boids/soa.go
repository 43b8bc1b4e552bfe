package boids

import "fmt"

// padCoord parks padding agents far outside the world so they never fall
// inside any neighbor radius. Padding slots are excluded from writes by a
// live mask, so they stay parked across ticks.
const padCoord = 1e7

// SoAStore owns one generation of agent state in struct-of-arrays form:
// four parallel arrays grouped into lanes of LaneWidth agents. The array
// length is always a multiple of LaneWidth; slots beyond n are padding.
type SoAStore struct {
	posX, posY []float32
	velX, velY []float32
	n          int
}

// paddedLen rounds n up to the next LaneWidth multiple.
func paddedLen(n int) int {
	return (n + LaneWidth - 1) / LaneWidth * LaneWidth
}

// NewSoAStore creates a store of n agents, all zero-valued, padded to a
// whole number of lanes.
func NewSoAStore(n int) *SoAStore {
	s := &SoAStore{
		posX: make([]float32, paddedLen(n)),
		posY: make([]float32, paddedLen(n)),
		velX: make([]float32, paddedLen(n)),
		velY: make([]float32, paddedLen(n)),
		n:    n,
	}
	s.pad()
	return s
}

// SoAFromAgents reorganizes an agent slice into struct-of-arrays form.
func SoAFromAgents(agents []Agent) *SoAStore {
	s := NewSoAStore(len(agents))
	for i, a := range agents {
		s.posX[i] = a.Pos.X
		s.posY[i] = a.Pos.Y
		s.velX[i] = a.Vel.X
		s.velY[i] = a.Vel.Y
	}
	return s
}

// Len returns the live agent count, excluding padding.
func (s *SoAStore) Len() int {
	return s.n
}

// NumLanes returns the number of LaneWidth-sized batches, padding
// included.
func (s *SoAStore) NumLanes() int {
	return len(s.posX) / LaneWidth
}

// AppendAgents adds agents at the tail, re-padding the arrays.
func (s *SoAStore) AppendAgents(agents []Agent) {
	grown := s.n + len(agents)
	for len(s.posX) < paddedLen(grown) {
		s.posX = append(s.posX, 0)
		s.posY = append(s.posY, 0)
		s.velX = append(s.velX, 0)
		s.velY = append(s.velY, 0)
	}
	for i, a := range agents {
		s.posX[s.n+i] = a.Pos.X
		s.posY[s.n+i] = a.Pos.Y
		s.velX[s.n+i] = a.Vel.X
		s.velY[s.n+i] = a.Vel.Y
	}
	s.n = grown
	s.pad()
}

// Truncate drops count agents from the tail, turning their slots into
// padding.
func (s *SoAStore) Truncate(count int) {
	s.n -= count
	s.posX = s.posX[:paddedLen(s.n)]
	s.posY = s.posY[:paddedLen(s.n)]
	s.velX = s.velX[:paddedLen(s.n)]
	s.velY = s.velY[:paddedLen(s.n)]
	s.pad()
}

// pad parks every slot beyond n.
func (s *SoAStore) pad() {
	for i := s.n; i < len(s.posX); i++ {
		s.posX[i] = padCoord
		s.posY[i] = padCoord
		s.velX[i] = 0
		s.velY[i] = 0
	}
}

// AppendTo materializes the live agents in array-of-structs form,
// appending to dst.
func (s *SoAStore) AppendTo(dst []Agent) []Agent {
	for i := 0; i < s.n; i++ {
		dst = append(dst, Agent{
			Pos: Vec2{s.posX[i], s.posY[i]},
			Vel: Vec2{s.velX[i], s.velY[i]},
		})
	}
	return dst
}

// posLane loads lane l of positions.
func (s *SoAStore) posLane(l int) laneVec2 {
	start := l * LaneWidth
	return laneVec2{laneLoad(s.posX[start:]), laneLoad(s.posY[start:])}
}

// velLane loads lane l of velocities.
func (s *SoAStore) velLane(l int) laneVec2 {
	start := l * LaneWidth
	return laneVec2{laneLoad(s.velX[start:]), laneLoad(s.velY[start:])}
}

// liveMask reports which slots of lane l hold live agents.
func (s *SoAStore) liveMask(l int) laneMask {
	var m laneMask
	for i := range m {
		m[i] = l*LaneWidth+i < s.n
	}
	return m
}

// candidateAt broadcasts the position of slot j across a full lane.
func (s *SoAStore) candidateAt(j int) laneVec2 {
	return laneVec2{laneSplat(s.posX[j]), laneSplat(s.posY[j])}
}

// closeMask is the lane perception predicate: squared-distance compare
// with the > 0 lower bound excluding self and coincident agents, per
// slot. Same compare as the scalar path so both strategies see the same
// neighbor sets.
func closeMask(self, other laneVec2, radius float32) laneMask {
	dsq := self.sub(other).lengthSq()
	within := dsq.lt(laneSplat(radius * radius))
	return within.and(dsq.gt(laneSplat(0)))
}

// alignmentLane computes the alignment rule for the 8 agents of lane l.
// Each candidate slot is broadcast against the whole lane in turn, so
// every agent is tested against every other agent, with compare-and-
// select in place of per-agent branching. Padding slots sit far outside
// any radius and mask themselves out.
func (s *SoAStore) alignmentLane(l int, p *Params) laneVec2 {
	thisPos := s.posLane(l)
	thisVel := s.velLane(l)
	var sum laneVec2
	var total lane

	for j := 0; j < len(s.posX); j++ {
		mask := closeMask(thisPos, s.candidateAt(j), p.PerceptionRadius)
		ones := mask.ones()
		sum = sum.add(laneVec2{laneSplat(s.velX[j]), laneSplat(s.velY[j])}.mul(ones))
		total = total.add(ones)
	}

	hasNeighbors := total.ne(laneSplat(0))
	steer := sum.mul(laneSplat(1).div(total))
	steer = steer.normalize().mul(laneSplat(p.MaxSpeed))
	steer = steer.sub(thisVel)
	steer = steer.clampLength(p.MaxForce)
	return steer.sel(hasNeighbors, laneVec2{})
}

// cohesionLane computes the cohesion rule for lane l.
func (s *SoAStore) cohesionLane(l int, p *Params) laneVec2 {
	thisPos := s.posLane(l)
	thisVel := s.velLane(l)
	var sum laneVec2
	var total lane

	for j := 0; j < len(s.posX); j++ {
		otherPos := s.candidateAt(j)
		mask := closeMask(thisPos, otherPos, p.PerceptionRadius)
		ones := mask.ones()
		sum = sum.add(otherPos.mul(ones))
		total = total.add(ones)
	}

	hasNeighbors := total.ne(laneSplat(0))
	steer := sum.mul(laneSplat(1).div(total))
	steer = steer.sub(thisPos).normalize().mul(laneSplat(p.MaxSpeed))
	steer = steer.sub(thisVel)
	steer = steer.clampLength(p.MaxForce)
	return steer.sel(hasNeighbors, laneVec2{})
}

// separationLane computes the separation rule for lane l.
func (s *SoAStore) separationLane(l int, p *Params) laneVec2 {
	thisPos := s.posLane(l)
	thisVel := s.velLane(l)
	var sum laneVec2
	var total lane

	for j := 0; j < len(s.posX); j++ {
		diff := thisPos.sub(s.candidateAt(j))
		dist := diff.length()

		within := dist.lt(laneSplat(p.SeparationRadius))
		mask := within.and(dist.gt(laneSplat(0)))

		// Inverse-distance weighting; the zero-distance slot divides to
		// Inf but is always masked out.
		contrib := diff.normalize().mul(laneSplat(1).div(dist)).sel(mask, laneVec2{})
		sum = sum.add(contrib)
		total = total.add(mask.ones())
	}

	hasNeighbors := total.ne(laneSplat(0))
	steer := sum.mul(laneSplat(1).div(total))
	steer = steer.normalize().mul(laneSplat(p.MaxSpeed))
	steer = steer.sub(thisVel)
	steer = steer.clampLength(p.MaxForce)
	return steer.sel(hasNeighbors, laneVec2{})
}

// accelerateLane combines the three rules, plus optional attraction, for
// lane l. Only live slots are checked for finiteness; padding slots are
// never written back.
func (s *SoAStore) accelerateLane(l int, p *Params, target *Vec2) (laneVec2, error) {
	acc := s.alignmentLane(l, p)
	acc = acc.add(s.cohesionLane(l, p))
	acc = acc.add(s.separationLane(l, p))

	if p.Attraction && target != nil {
		attraction := laneVec2Splat(*target).sub(s.posLane(l)).normalize().mul(laneSplat(p.MaxSpeed))
		acc = acc.add(attraction)
	}

	live := s.liveMask(l)
	for i := range live {
		if live[i] && (!isFinite(acc.x[i]) || !isFinite(acc.y[i])) {
			return laneVec2{}, fmt.Errorf("%w: acceleration (%v, %v) for agent %d",
				ErrNotFinite, acc.x[i], acc.y[i], l*LaneWidth+i)
		}
	}
	return acc, nil
}

// UpdateLane integrates lane l of src into the corresponding lane of s.
// Reads touch only src (the current generation), writes only s (the next
// generation); padding slots are re-parked rather than integrated.
func (s *SoAStore) UpdateLane(src *SoAStore, l int, p *Params, target *Vec2, dt, width, height float32) error {
	acc, err := src.accelerateLane(l, p, target)
	if err != nil {
		return err
	}

	dtLane := laneSplat(dt)
	vel := src.velLane(l).add(acc.mul(dtLane))
	pos := src.posLane(l).add(vel.mul(dtLane))

	live := src.liveMask(l)
	for i := range live {
		if live[i] && (!isFinite(vel.x[i]) || !isFinite(vel.y[i]) || !isFinite(pos.x[i]) || !isFinite(pos.y[i])) {
			return fmt.Errorf("%w: state for agent %d", ErrNotFinite, l*LaneWidth+i)
		}
	}

	// Teleport wrap at world edges, elementwise.
	zero := laneSplat(0)
	w := laneSplat(width)
	h := laneSplat(height)
	pos.x = pos.x.gt(w).sel(zero, pos.x)
	pos.y = pos.y.gt(h).sel(zero, pos.y)
	pos.x = pos.x.lt(zero).sel(w, pos.x)
	pos.y = pos.y.lt(zero).sel(h, pos.y)

	// Keep padding parked.
	pos = pos.sel(live, laneVec2Splat(Vec2{padCoord, padCoord}))
	vel = vel.sel(live, laneVec2{})

	start := l * LaneWidth
	pos.x.store(s.posX[start:])
	pos.y.store(s.posY[start:])
	vel.x.store(s.velX[start:])
	vel.y.store(s.velY[start:])
	return nil
}
