package maze

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/beka-birhanu/micromouse-api/sim"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("valid even dimension", func(t *testing.T) {
		m, err := New(4)
		assert.NoError(t, err)
		assert.Equal(t, 4, m.Dim())
	})

	t.Run("rejects odd dimension", func(t *testing.T) {
		_, err := New(5)
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})

	t.Run("rejects too small dimension", func(t *testing.T) {
		_, err := New(2)
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})

	t.Run("rejects too large dimension", func(t *testing.T) {
		_, err := New(22)
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})

	t.Run("starts fully walled", func(t *testing.T) {
		m, err := New(4)
		assert.NoError(t, err)
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				p := sim.Position{Row: r, Col: c}
				for _, d := range sim.Order {
					assert.False(t, m.IsPermissible(p, d))
				}
			}
		}
	})
}

func TestStartAndGoal(t *testing.T) {
	m, err := New(8)
	assert.NoError(t, err)

	assert.Equal(t, sim.Position{Row: 7, Col: 0}, m.Start())
	assert.ElementsMatch(t, []sim.Position{
		{Row: 3, Col: 3},
		{Row: 3, Col: 4},
		{Row: 4, Col: 3},
		{Row: 4, Col: 4},
	}, m.GoalCells())
}

func TestGenerate(t *testing.T) {
	m, err := Generate(8, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)

	t.Run("walls stay symmetric", func(t *testing.T) {
		for r := 0; r < m.Dim(); r++ {
			for c := 0; c < m.Dim(); c++ {
				p := sim.Position{Row: r, Col: c}
				for _, d := range sim.Order {
					next := p.Next(d)
					if !m.InBound(next) {
						continue
					}
					assert.Equal(t, m.IsPermissible(p, d), m.IsPermissible(next, d.Opposite()),
						"wall between %v and %v disagrees", p, next)
				}
			}
		}
	})

	t.Run("every cell reachable from start", func(t *testing.T) {
		assert.Equal(t, m.Dim()*m.Dim(), len(reachable(m)))
	})

	t.Run("reproducible for equal seeds", func(t *testing.T) {
		again, err := Generate(8, rand.New(rand.NewSource(42)))
		assert.NoError(t, err)
		assert.Equal(t, m.WallMasks(), again.WallMasks())
	})
}

func TestWallMaskRoundTrip(t *testing.T) {
	m, err := Generate(8, rand.New(rand.NewSource(7)))
	assert.NoError(t, err)

	rebuilt, err := FromWallMasks(m.Dim(), m.WallMasks())
	assert.NoError(t, err)
	assert.Equal(t, m.WallMasks(), rebuilt.WallMasks())
}

func TestParse(t *testing.T) {
	t.Run("parses a rendered definition", func(t *testing.T) {
		m, err := Generate(8, rand.New(rand.NewSource(11)))
		assert.NoError(t, err)

		parsed, err := Parse(strings.NewReader(definitionText(m)))
		assert.NoError(t, err)
		assert.Equal(t, m.WallMasks(), parsed.WallMasks())
	})

	t.Run("accepts a fully walled grid", func(t *testing.T) {
		text := "4\n" + strings.Repeat("0,0,0,0\n", 4)
		m, err := Parse(strings.NewReader(text))
		assert.NoError(t, err)
		assert.Equal(t, 4, m.Dim())
	})

	t.Run("rejects missing dimension", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrMalformedDefinition)
	})

	t.Run("rejects bad dimension", func(t *testing.T) {
		_, err := Parse(strings.NewReader("five\n"))
		assert.ErrorIs(t, err, ErrMalformedDefinition)
	})

	t.Run("rejects short row", func(t *testing.T) {
		text := "4\n0,0,0\n0,0,0,0\n0,0,0,0\n0,0,0,0\n"
		_, err := Parse(strings.NewReader(text))
		assert.ErrorIs(t, err, ErrMalformedDefinition)
	})

	t.Run("rejects missing rows", func(t *testing.T) {
		text := "4\n0,0,0,0\n0,0,0,0\n"
		_, err := Parse(strings.NewReader(text))
		assert.ErrorIs(t, err, ErrMalformedDefinition)
	})

	t.Run("rejects asymmetric opening", func(t *testing.T) {
		// (0,0) opens east but (0,1) walls it.
		text := "4\n2,0,0,0\n0,0,0,0\n0,0,0,0\n0,0,0,0\n"
		_, err := Parse(strings.NewReader(text))
		assert.ErrorIs(t, err, ErrMalformedDefinition)
	})

	t.Run("rejects opening out of the grid", func(t *testing.T) {
		// (0,0) opens north, past the boundary.
		text := "4\n1,0,0,0\n0,0,0,0\n0,0,0,0\n0,0,0,0\n"
		_, err := Parse(strings.NewReader(text))
		assert.ErrorIs(t, err, ErrMalformedDefinition)
	})
}

func TestSensorDistances(t *testing.T) {
	m, err := New(4)
	assert.NoError(t, err)

	// Open corridor along the top row.
	for c := 0; c < 3; c++ {
		assert.NoError(t, m.OpenWall(sim.Position{Row: 0, Col: c}, sim.East))
	}

	t.Run("corridor ahead", func(t *testing.T) {
		got := m.SensorDistances(sim.Position{Row: 0, Col: 0}, sim.East)
		assert.Equal(t, [3]int{0, 3, 0}, got)
	})

	t.Run("wall immediately ahead", func(t *testing.T) {
		got := m.SensorDistances(sim.Position{Row: 0, Col: 3}, sim.East)
		assert.Equal(t, [3]int{0, 0, 0}, got)
	})

	t.Run("corridor behind after turning about", func(t *testing.T) {
		got := m.SensorDistances(sim.Position{Row: 0, Col: 3}, sim.West)
		assert.Equal(t, [3]int{0, 3, 0}, got)
	})

	t.Run("corridor to the left", func(t *testing.T) {
		got := m.SensorDistances(sim.Position{Row: 0, Col: 0}, sim.South)
		assert.Equal(t, [3]int{3, 0, 0}, got)
	})
}

func TestString(t *testing.T) {
	m, err := New(4)
	assert.NoError(t, err)

	rendered := m.String()
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	assert.Len(t, lines, 2*m.Dim()+1)
	assert.Equal(t, "+---+---+---+---+", lines[0])
}

// definitionText renders a maze in the text format Parse reads.
func definitionText(m *Maze) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", m.Dim())
	masks := m.WallMasks()
	for r := 0; r < m.Dim(); r++ {
		fields := make([]string, m.Dim())
		for c := 0; c < m.Dim(); c++ {
			fields[c] = fmt.Sprintf("%d", masks[r*m.Dim()+c])
		}
		b.WriteString(strings.Join(fields, ",") + "\n")
	}
	return b.String()
}

// reachable floods the maze from the start cell along open walls.
func reachable(m *Maze) map[sim.Position]struct{} {
	seen := map[sim.Position]struct{}{m.Start(): {}}
	frontier := []sim.Position{m.Start()}
	for len(frontier) > 0 {
		p := frontier[0]
		frontier = frontier[1:]
		for _, d := range sim.Order {
			if !m.IsPermissible(p, d) {
				continue
			}
			next := p.Next(d)
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			frontier = append(frontier, next)
		}
	}
	return seen
}
