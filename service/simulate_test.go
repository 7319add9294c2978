package service

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/micromouse-api/sim"
	"github.com/beka-birhanu/micromouse-api/sim/gridmap"
	"github.com/beka-birhanu/micromouse-api/sim/maze"
	"github.com/beka-birhanu/micromouse-api/sim/plan"
	"github.com/stretchr/testify/assert"
)

// corridorMaze carves a single L-shaped corridor in an 8x8 maze: north
// from the start (7,0) to (3,0), then east to the goal cell (3,3).
func corridorMaze(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.New(8)
	assert.NoError(t, err)
	for r := 7; r > 3; r-- {
		assert.NoError(t, m.OpenWall(sim.Position{Row: r, Col: 0}, sim.North))
	}
	for c := 0; c < 3; c++ {
		assert.NoError(t, m.OpenWall(sim.Position{Row: 3, Col: c}, sim.East))
	}
	return m
}

func TestSimulateCorridor(t *testing.T) {
	src := corridorMaze(t)

	result, err := Simulate(src, SimOptions{})
	assert.NoError(t, err)
	assert.True(t, result.GoalFound)
	assert.Equal(t, 14, result.ExploreActions, "7 corridor cells out and back")
	assert.Equal(t, 3, result.RaceActions, "3 north, 1 north, 3 east batched")
	assert.InDelta(t, 3.0+14.0/30.0, result.Score, 1e-9)

	t.Run("trace covers both phases in order", func(t *testing.T) {
		var records []sim.Record
		for rec := range result.Trace() {
			records = append(records, rec)
		}
		assert.Len(t, records, (14+1)+(3+1))

		for i, rec := range records {
			assert.Equal(t, i, rec.Seq)
		}
		assert.Equal(t, sim.PhaseExplore, records[0].Phase)
		assert.Equal(t, sim.PhaseRace, records[len(records)-1].Phase)
	})

	t.Run("trace iterator restarts", func(t *testing.T) {
		first, second := 0, 0
		for range result.Trace() {
			first++
		}
		for range result.Trace() {
			second++
		}
		assert.Equal(t, first, second)
	})
}

func TestSimulateGeneratedMaze(t *testing.T) {
	src, err := maze.Generate(8, rand.New(rand.NewSource(17)))
	assert.NoError(t, err)

	result, err := Simulate(src, SimOptions{})
	assert.NoError(t, err)
	assert.True(t, result.GoalFound)
	assert.Greater(t, result.RaceActions, 0)
	assert.InDelta(t, float64(result.RaceActions)+float64(result.ExploreActions)/30.0, result.Score, 1e-9)
}

func TestSimulateBudgetExhausted(t *testing.T) {
	src := corridorMaze(t)

	result, err := Simulate(src, SimOptions{TimeBudget: 5})
	assert.ErrorIs(t, err, sim.ErrBudgetExceeded)
	assert.Equal(t, 5, result.ExploreActions)
	assert.Equal(t, 0, result.RaceActions, "no budget left for the race")
	assert.False(t, result.GoalFound)
	assert.NotNil(t, result.Map, "best-effort map survives the abort")
}

func TestSimulateCustomPlan(t *testing.T) {
	src := corridorMaze(t)

	called := 0
	result, err := Simulate(src, SimOptions{
		Plan: func(m *gridmap.Map, goal []sim.Position) (*plan.Policy, error) {
			called++
			return plan.Build(m, goal, plan.Options{})
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, called)
	assert.NotNil(t, result.Policy)
}
