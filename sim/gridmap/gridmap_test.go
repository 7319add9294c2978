package gridmap

import (
	"testing"

	"github.com/beka-birhanu/micromouse-api/sim"
	"github.com/stretchr/testify/assert"
)

func TestWallRecording(t *testing.T) {
	t.Run("starts unknown", func(t *testing.T) {
		m := New(4)
		assert.Equal(t, Unknown, m.Wall(sim.Position{Row: 1, Col: 1}, sim.North))
	})

	t.Run("out of bounds reads closed", func(t *testing.T) {
		m := New(4)
		assert.Equal(t, Closed, m.Wall(sim.Position{Row: -1, Col: 0}, sim.North))
	})

	t.Run("open fact mirrors into the neighbor", func(t *testing.T) {
		m := New(4)
		assert.NoError(t, m.RecordOpen(sim.Position{Row: 1, Col: 1}, sim.East))
		assert.Equal(t, Open, m.Wall(sim.Position{Row: 1, Col: 1}, sim.East))
		assert.Equal(t, Open, m.Wall(sim.Position{Row: 1, Col: 2}, sim.West))
	})

	t.Run("closed fact mirrors into the neighbor", func(t *testing.T) {
		m := New(4)
		assert.NoError(t, m.RecordClosed(sim.Position{Row: 1, Col: 1}, sim.South))
		assert.Equal(t, Closed, m.Wall(sim.Position{Row: 1, Col: 1}, sim.South))
		assert.Equal(t, Closed, m.Wall(sim.Position{Row: 2, Col: 1}, sim.North))
	})

	t.Run("boundary fact records without a mirror", func(t *testing.T) {
		m := New(4)
		assert.NoError(t, m.RecordClosed(sim.Position{Row: 0, Col: 0}, sim.North))
		assert.Equal(t, Closed, m.Wall(sim.Position{Row: 0, Col: 0}, sim.North))
	})

	t.Run("re-recording is a no-op", func(t *testing.T) {
		m := New(4)
		p := sim.Position{Row: 2, Col: 2}
		assert.NoError(t, m.RecordOpen(p, sim.North))
		assert.NoError(t, m.RecordOpen(p, sim.North))
		assert.Equal(t, Open, m.Wall(p, sim.North))
	})

	t.Run("contradiction fails", func(t *testing.T) {
		m := New(4)
		p := sim.Position{Row: 2, Col: 2}
		assert.NoError(t, m.RecordOpen(p, sim.North))
		assert.ErrorIs(t, m.RecordClosed(p, sim.North), sim.ErrWallConflict)
	})

	t.Run("mirrored contradiction fails from the far side", func(t *testing.T) {
		m := New(4)
		assert.NoError(t, m.RecordOpen(sim.Position{Row: 1, Col: 1}, sim.East))
		assert.ErrorIs(t, m.RecordClosed(sim.Position{Row: 1, Col: 2}, sim.West), sim.ErrWallConflict)
	})
}

func TestNeighborsOpen(t *testing.T) {
	m := New(4)
	p := sim.Position{Row: 1, Col: 1}
	assert.NoError(t, m.RecordOpen(p, sim.West))
	assert.NoError(t, m.RecordOpen(p, sim.South))
	assert.NoError(t, m.RecordOpen(p, sim.North))

	// Fixed North, East, South, West order regardless of recording order.
	assert.Equal(t, []sim.Direction{sim.North, sim.South, sim.West}, m.NeighborsOpen(p))
}

func TestVisits(t *testing.T) {
	m := New(4)
	p := sim.Position{Row: 3, Col: 0}

	assert.Equal(t, 0, m.Visits(p))
	assert.Equal(t, 1, m.MarkVisited(p))
	assert.Equal(t, 2, m.MarkVisited(p))
	assert.Equal(t, 2, m.Visits(p))
}

func TestTraversals(t *testing.T) {
	m := New(4)
	p := sim.Position{Row: 1, Col: 1}
	next := p.Next(sim.East)

	assert.Equal(t, 0, m.Traversals(p, sim.East))
	m.MarkTraversed(p, sim.East)
	assert.Equal(t, 1, m.Traversals(p, sim.East))
	assert.Equal(t, 1, m.Traversals(next, sim.West), "corridor count is symmetric")

	m.MarkTraversed(next, sim.West)
	assert.Equal(t, 2, m.Traversals(p, sim.East))
}
