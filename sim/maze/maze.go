/*
Package maze provides the ground-truth maze of a simulation run.

A Maze is a square grid of cells with per-side wall flags. It can be
parsed from a text definition, generated randomly with Wilson's
algorithm, queried for wall permissibility, asked to simulate the
agent's three range sensors, and rendered as ASCII for inspection.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/beka-birhanu/micromouse-api/sim"
)

const (
	// MinDimension is the smallest usable maze side. The goal region is
	// the center 2x2 block, so anything smaller has no interior.
	MinDimension = 4
	// MaxDimension bounds maze size the same way the rendering and
	// storage layers expect.
	MaxDimension = 20
)

var (
	ErrInvalidDimension = errors.New("invalid maze dimension")
	ErrOutOfBounds      = errors.New("cell out of maze bounds")
)

// Maze is a rectangular ground-truth maze. Grid is indexed [row][col]
// with row 0 at the top; north decreases the row index.
type Maze struct {
	dim  int
	grid [][]Cell
}

// New creates a maze of the given side length with every wall up.
// Dimension must be even so the center 2x2 goal region is well defined.
func New(dim int) (*Maze, error) {
	if dim < MinDimension || dim > MaxDimension || dim%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}

	grid := make([][]Cell, dim)
	for r := range grid {
		grid[r] = make([]Cell, dim)
		for c := range grid[r] {
			grid[r][c] = Cell{
				NorthWall: true,
				SouthWall: true,
				EastWall:  true,
				WestWall:  true,
			}
		}
	}

	return &Maze{dim: dim, grid: grid}, nil
}

// Generate creates a maze of the given side length and carves a uniform
// spanning tree through it with Wilson's algorithm, so every cell is
// reachable from every other. The caller provides the randomness source
// to keep generation reproducible.
func Generate(dim int, rng *rand.Rand) (*Maze, error) {
	m, err := New(dim)
	if err != nil {
		return nil, err
	}
	m.carve(rng)
	return m, nil
}

// Dim returns the side length of the maze.
func (m *Maze) Dim() int { return m.dim }

// InBound reports whether the position lies inside the grid.
func (m *Maze) InBound(p sim.Position) bool {
	return p.Row >= 0 && p.Row < m.dim && p.Col >= 0 && p.Col < m.dim
}

// Cell returns the cell at p. Panics if p is out of bounds; callers are
// expected to gate on InBound.
func (m *Maze) Cell(p sim.Position) *Cell {
	return &m.grid[p.Row][p.Col]
}

// IsPermissible reports whether an agent at p may move one cell in d:
// the destination must be inside the grid and the shared wall open.
func (m *Maze) IsPermissible(p sim.Position, d sim.Direction) bool {
	if !m.InBound(p) || !m.InBound(p.Next(d)) {
		return false
	}
	return !m.grid[p.Row][p.Col].HasWall(d)
}

// OpenWall removes the wall between p and its neighbor in d, updating
// both cells so wall records stay symmetric.
func (m *Maze) OpenWall(p sim.Position, d sim.Direction) error {
	next := p.Next(d)
	if !m.InBound(p) || !m.InBound(next) {
		return fmt.Errorf("%w: open wall %v %s", ErrOutOfBounds, p, d)
	}
	m.grid[p.Row][p.Col].setWall(d, false)
	m.grid[next.Row][next.Col].setWall(d.Opposite(), false)
	return nil
}

// Start returns the start cell, the bottom-left corner. The agent's
// initial heading is North by convention.
func (m *Maze) Start() sim.Position {
	return sim.Position{Row: m.dim - 1, Col: 0}
}

// GoalCells returns the center 2x2 goal region.
func (m *Maze) GoalCells() []sim.Position {
	lo, hi := m.dim/2-1, m.dim/2
	return []sim.Position{
		{Row: lo, Col: lo},
		{Row: lo, Col: hi},
		{Row: hi, Col: lo},
		{Row: hi, Col: hi},
	}
}

// SensorDistances simulates the agent's three range sensors at p facing
// heading. The result holds the number of consecutive open cells to the
// left, front and right, in that order; zero means the wall is
// immediately adjacent. Distances are naturally capped by the grid.
func (m *Maze) SensorDistances(p sim.Position, heading sim.Direction) [3]int {
	return [3]int{
		m.distToWall(p, heading.Turned(sim.RotateLeft)),
		m.distToWall(p, heading),
		m.distToWall(p, heading.Turned(sim.RotateRight)),
	}
}

// distToWall counts open cells from p in direction d until a wall.
func (m *Maze) distToWall(p sim.Position, d sim.Direction) int {
	dist := 0
	for m.IsPermissible(p, d) {
		p = p.Next(d)
		dist++
	}
	return dist
}

// carve runs Wilson's loop-erased random walks until every cell has
// been joined to the spanning tree.
func (m *Maze) carve(rng *rand.Rand) {
	visited := make(map[sim.Position]struct{}, m.dim*m.dim)
	visited[m.randomPosition(rng)] = struct{}{}

	for len(visited) < m.dim*m.dim {
		for from, d := range m.randomWalk(rng, visited) {
			_ = m.OpenWall(from, d)
			visited[from] = struct{}{}
		}
	}
}

// randomWalk walks from a random unvisited cell until it hits the
// visited set, remembering only the last exit direction per cell. The
// loop erasure is implicit: revisiting a cell overwrites its exit.
func (m *Maze) randomWalk(rng *rand.Rand, visited map[sim.Position]struct{}) map[sim.Position]sim.Direction {
	exits := make(map[sim.Position]sim.Direction)
	pos := m.randomUnvisitedPosition(rng, visited)

	for {
		d := m.randomNeighborDirection(rng, pos)
		exits[pos] = d
		next := pos.Next(d)
		if _, included := visited[next]; included {
			break
		}
		pos = next
	}

	return exits
}

func (m *Maze) randomPosition(rng *rand.Rand) sim.Position {
	return sim.Position{Row: rng.Intn(m.dim), Col: rng.Intn(m.dim)}
}

func (m *Maze) randomUnvisitedPosition(rng *rand.Rand, visited map[sim.Position]struct{}) sim.Position {
	for {
		pos := m.randomPosition(rng)
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

func (m *Maze) randomNeighborDirection(rng *rand.Rand, pos sim.Position) sim.Direction {
	var candidates []sim.Direction
	for _, d := range sim.Order {
		if m.InBound(pos.Next(d)) {
			candidates = append(candidates, d)
		}
	}
	return candidates[rng.Intn(len(candidates))]
}

// WallMasks returns the maze encoded as row-major four-bit open masks,
// the same encoding Parse reads. Used by the storage layer.
func (m *Maze) WallMasks() []uint8 {
	masks := make([]uint8, 0, m.dim*m.dim)
	for r := 0; r < m.dim; r++ {
		for c := 0; c < m.dim; c++ {
			masks = append(masks, m.grid[r][c].OpenMask())
		}
	}
	return masks
}

// String renders the maze as ASCII, one '+---+' box per cell with
// openings where walls are down.
func (m *Maze) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", m.dim) + "\n")

	for row := 0; row < m.dim; row++ {
		cellRow := "|"
		for col := 0; col < m.dim; col++ {
			if m.grid[row][col].EastWall {
				cellRow += "   |"
			} else {
				cellRow += "    "
			}
		}
		b.WriteString(cellRow + "\n")

		wallRow := "+"
		for col := 0; col < m.dim; col++ {
			if m.grid[row][col].SouthWall {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		b.WriteString(wallRow + "\n")
	}

	return b.String()
}
