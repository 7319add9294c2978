package service

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/beka-birhanu/micromouse-api/sim/maze"
	"github.com/stretchr/testify/assert"
)

func TestMazeCatalog(t *testing.T) {
	mazeRepo := newFakeMazeRepo()
	catalog, err := NewMazeCatalog(mazeRepo, nopLogger{}, rand.New(rand.NewSource(1)))
	assert.NoError(t, err)

	t.Run("create stores a parsed definition", func(t *testing.T) {
		definition := "4\n" + strings.Repeat("0,0,0,0\n", 4)
		record, err := catalog.Create("walled", definition)
		assert.NoError(t, err)
		assert.Equal(t, 4, record.Dim)

		stored, err := catalog.Get(record.ID)
		assert.NoError(t, err)
		assert.Equal(t, record.Walls, stored.Walls)
	})

	t.Run("create rejects a malformed definition", func(t *testing.T) {
		_, err := catalog.Create("broken", "4\n0,0\n")
		assert.ErrorIs(t, err, maze.ErrMalformedDefinition)
	})

	t.Run("generate stores a solvable maze", func(t *testing.T) {
		record, err := catalog.Generate("random", 8)
		assert.NoError(t, err)
		assert.Equal(t, 8, record.Dim)
		assert.Len(t, record.Walls, 64)

		m, err := record.Maze()
		assert.NoError(t, err)

		result, err := Simulate(m, SimOptions{})
		assert.NoError(t, err)
		assert.True(t, result.GoalFound)
	})

	t.Run("generate rejects an odd dimension", func(t *testing.T) {
		_, err := catalog.Generate("odd", 7)
		assert.ErrorIs(t, err, maze.ErrInvalidDimension)
	})

	t.Run("equally seeded catalogs generate identical mazes", func(t *testing.T) {
		first, err := NewMazeCatalog(newFakeMazeRepo(), nopLogger{}, rand.New(rand.NewSource(7)))
		assert.NoError(t, err)
		second, err := NewMazeCatalog(newFakeMazeRepo(), nopLogger{}, rand.New(rand.NewSource(7)))
		assert.NoError(t, err)

		a, err := first.Generate("twin-a", 10)
		assert.NoError(t, err)
		b, err := second.Generate("twin-b", 10)
		assert.NoError(t, err)
		assert.Equal(t, a.Walls, b.Walls)
	})

	t.Run("render draws the stored maze", func(t *testing.T) {
		record, err := catalog.Generate("drawn", 6)
		assert.NoError(t, err)

		rendered, err := catalog.Render(record.ID)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(rendered, "+---+"))
	})
}
