/*
Package plan converts a learned grid map into an action policy: for
every reachable cell, the direction that moves the agent one step closer
to the goal region by accumulated cost.

The computation is a multi-source Dijkstra seeded from every goal cell
at once, over the undirected graph of confirmed-open adjacencies.
Unknown walls count as absent edges: a best-effort map from a truncated
exploration simply yields fewer routes, never optimistic ones. The lazy
decrease-key pattern (push duplicates, skip stale pops) keeps the heap
bookkeeping simple.
*/
package plan

import (
	"container/heap"
	"encoding/json"
	"errors"
	"math"

	"github.com/beka-birhanu/micromouse-api/sim"
	"github.com/beka-birhanu/micromouse-api/sim/gridmap"
)

var ErrNoGoal = errors.New("no goal cells given")

// Options configures policy construction.
type Options struct {
	// StepCost is the cost of moving one cell. Zero means 1.
	StepCost int
}

// Policy maps every cell to its minimum distance to the goal region and
// the direction that realizes it. Built once, immutable afterwards.
type Policy struct {
	dim  int
	dist []int
	next []sim.Direction
}

// Build computes the policy for the given map and goal region.
// Given the same map and goal, Build always produces the same policy:
// cells are relaxed in fixed North, East, South, West order and heap
// ties break on cell index.
func Build(m *gridmap.Map, goal []sim.Position, opts Options) (*Policy, error) {
	if len(goal) == 0 {
		return nil, ErrNoGoal
	}
	cost := opts.StepCost
	if cost <= 0 {
		cost = 1
	}

	dim := m.Dim()
	p := &Policy{
		dim:  dim,
		dist: make([]int, dim*dim),
		next: make([]sim.Direction, dim*dim),
	}
	for i := range p.dist {
		p.dist[i] = math.MaxInt
	}

	visited := make([]bool, dim*dim)
	pq := make(cellPQ, 0, dim*dim)
	heap.Init(&pq)
	for _, g := range goal {
		i := g.Row*dim + g.Col
		p.dist[i] = 0
		heap.Push(&pq, &cellItem{index: i, dist: 0})
	}

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*cellItem)
		if visited[item.index] {
			continue // stale lazy-decrease-key entry
		}
		visited[item.index] = true

		u := sim.Position{Row: item.index / dim, Col: item.index % dim}
		for _, d := range m.NeighborsOpen(u) {
			v := u.Next(d)
			vi := v.Row*dim + v.Col
			candidate := p.dist[item.index] + cost
			if candidate >= p.dist[vi] {
				continue
			}
			p.dist[vi] = candidate
			// Walking the relaxation edge backwards, from v to u,
			// decreases the distance to goal.
			p.next[vi] = d.Opposite()
			heap.Push(&pq, &cellItem{index: vi, dist: candidate})
		}
	}

	return p, nil
}

// Dim returns the side length of the planned grid.
func (p *Policy) Dim() int { return p.dim }

// Next returns the recommended direction from pos toward the goal.
// ok is false when pos has no route in the learned map, and for goal
// cells themselves, which need no further action. A race placed on a
// routeless cell must fail rather than guess.
func (p *Policy) Next(pos sim.Position) (d sim.Direction, ok bool) {
	i := pos.Row*p.dim + pos.Col
	if p.dist[i] == math.MaxInt || p.dist[i] == 0 {
		return 0, false
	}
	return p.next[i], true
}

// Distance returns pos's minimum cost to the goal region. ok is false
// for unreachable cells.
func (p *Policy) Distance(pos sim.Position) (dist int, ok bool) {
	i := pos.Row*p.dim + pos.Col
	if p.dist[i] == math.MaxInt {
		return 0, false
	}
	return p.dist[i], true
}

// policyDoc is the serialized form used by the cache layer.
type policyDoc struct {
	Dim  int             `json:"dim"`
	Dist []int           `json:"dist"`
	Next []sim.Direction `json:"next"`
}

// MarshalJSON encodes the policy for caching.
func (p *Policy) MarshalJSON() ([]byte, error) {
	return json.Marshal(policyDoc{Dim: p.dim, Dist: p.dist, Next: p.next})
}

// UnmarshalJSON decodes a cached policy.
func (p *Policy) UnmarshalJSON(data []byte) error {
	var doc policyDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	p.dim = doc.Dim
	p.dist = doc.Dist
	p.next = doc.Next
	return nil
}

// cellItem is one heap entry: a cell index and its candidate distance.
type cellItem struct {
	index int
	dist  int
}

// cellPQ is a min-heap of cellItem ordered by distance, then cell index
// for determinism.
type cellPQ []*cellItem

func (pq cellPQ) Len() int { return len(pq) }

func (pq cellPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].index < pq[j].index
}

func (pq cellPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *cellPQ) Push(x any) { *pq = append(*pq, x.(*cellItem)) }

func (pq *cellPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
