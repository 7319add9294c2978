/*
Package gridmap holds the agent's learned picture of the maze: for every
cell a tri-state wall record per side, a visit counter, and per-side
traversal counters used as Trémaux marks.

Wall knowledge is monotone. Recording a fact twice is a no-op; recording
a fact that contradicts an earlier one fails with
sim.ErrWallConflict, which callers treat as fatal for the run.
*/
package gridmap

import (
	"fmt"

	"github.com/beka-birhanu/micromouse-api/sim"
)

// State is the knowledge about one side of one cell.
type State uint8

const (
	Unknown State = iota
	Open
	Closed
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Map is the mutable learned map. It is owned by the exploration
// controller while exploring and read-only afterwards.
type Map struct {
	dim       int
	open      []uint8 // per-cell bitmask of sides known open
	closed    []uint8 // per-cell bitmask of sides known walled
	visits    []int   // per-cell entry count
	traversed []int   // per cell x direction corridor traversal count
}

var maskBits = [4]uint8{1, 2, 4, 8} // indexed by sim.Direction

// New creates an empty map for a dim x dim grid.
func New(dim int) *Map {
	return &Map{
		dim:       dim,
		open:      make([]uint8, dim*dim),
		closed:    make([]uint8, dim*dim),
		visits:    make([]int, dim*dim),
		traversed: make([]int, dim*dim*4),
	}
}

// Dim returns the side length of the mapped grid.
func (m *Map) Dim() int { return m.dim }

// InBound reports whether the position lies inside the mapped grid.
func (m *Map) InBound(p sim.Position) bool {
	return p.Row >= 0 && p.Row < m.dim && p.Col >= 0 && p.Col < m.dim
}

func (m *Map) index(p sim.Position) int {
	return p.Row*m.dim + p.Col
}

// Wall returns the recorded knowledge about the side d of cell p.
func (m *Map) Wall(p sim.Position, d sim.Direction) State {
	if !m.InBound(p) {
		return Closed
	}
	i := m.index(p)
	switch {
	case m.open[i]&maskBits[d] != 0:
		return Open
	case m.closed[i]&maskBits[d] != 0:
		return Closed
	default:
		return Unknown
	}
}

// RecordOpen records that side d of cell p is open, mirroring the fact
// into the adjacent cell when it is in bounds. Re-recording the same
// observation is a no-op; contradicting a recorded wall fails with
// sim.ErrWallConflict.
func (m *Map) RecordOpen(p sim.Position, d sim.Direction) error {
	if err := m.record(p, d, true); err != nil {
		return err
	}
	if next := p.Next(d); m.InBound(next) {
		return m.record(next, d.Opposite(), true)
	}
	return nil
}

// RecordClosed records that side d of cell p is walled, mirroring the
// fact into the adjacent cell when it is in bounds.
func (m *Map) RecordClosed(p sim.Position, d sim.Direction) error {
	if err := m.record(p, d, false); err != nil {
		return err
	}
	if next := p.Next(d); m.InBound(next) {
		return m.record(next, d.Opposite(), false)
	}
	return nil
}

func (m *Map) record(p sim.Position, d sim.Direction, open bool) error {
	if !m.InBound(p) {
		return fmt.Errorf("record wall at %v: out of bounds", p)
	}
	i := m.index(p)
	if open {
		if m.closed[i]&maskBits[d] != 0 {
			return fmt.Errorf("%w: (%d,%d) %s recorded closed, observed open",
				sim.ErrWallConflict, p.Row, p.Col, d)
		}
		m.open[i] |= maskBits[d]
		return nil
	}
	if m.open[i]&maskBits[d] != 0 {
		return fmt.Errorf("%w: (%d,%d) %s recorded open, observed closed",
			sim.ErrWallConflict, p.Row, p.Col, d)
	}
	m.closed[i] |= maskBits[d]
	return nil
}

// NeighborsOpen returns the directions known open from p, always in the
// fixed order North, East, South, West.
func (m *Map) NeighborsOpen(p sim.Position) []sim.Direction {
	var dirs []sim.Direction
	for _, d := range sim.Order {
		if m.Wall(p, d) == Open && m.InBound(p.Next(d)) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Visits returns how many times the agent has entered p.
func (m *Map) Visits(p sim.Position) int {
	return m.visits[m.index(p)]
}

// MarkVisited increments the entry counter of p and returns the new count.
func (m *Map) MarkVisited(p sim.Position) int {
	m.visits[m.index(p)]++
	return m.visits[m.index(p)]
}

// Traversals returns how often the corridor leaving p in d was walked,
// in either direction.
func (m *Map) Traversals(p sim.Position, d sim.Direction) int {
	return m.traversed[m.index(p)*4+int(d)]
}

// MarkTraversed counts one walk through the corridor leaving p in d.
// The count is kept symmetric with the far end of the corridor.
func (m *Map) MarkTraversed(p sim.Position, d sim.Direction) {
	m.traversed[m.index(p)*4+int(d)]++
	if next := p.Next(d); m.InBound(next) {
		m.traversed[m.index(next)*4+int(d.Opposite())]++
	}
}
