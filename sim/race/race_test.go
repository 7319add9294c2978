package race

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beka-birhanu/micromouse-api/sim"
	"github.com/beka-birhanu/micromouse-api/sim/explore"
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

// preparedRun explores src and plans a policy over the learned map.
func preparedRun(t *testing.T, src *maze.Maze) (*gridmap.Map, *plan.Policy) {
	t.Helper()
	c := explore.New(src, explore.Options{})
	m, err := c.Run()
	assert.NoError(t, err)
	p, err := plan.Build(m, src.GoalCells(), plan.Options{})
	assert.NoError(t, err)
	return m, p
}

func TestRaceCorridor(t *testing.T) {
	src := corridorMaze(t)
	m, p := preparedRun(t, src)

	e := New(src, m, p, Options{})
	assert.NoError(t, e.Run())

	t.Run("reaches the goal region", func(t *testing.T) {
		assert.Equal(t, sim.Position{Row: 3, Col: 3}, e.Position())
	})

	t.Run("batches straight runs", func(t *testing.T) {
		// 7 corridor cells: 3 north, 1 north, 3 east.
		assert.Equal(t, 3, e.Actions())

		var movements []int
		for rec := range e.Trace() {
			movements = append(movements, rec.Movement)
		}
		assert.Equal(t, []int{0, 3, 1, 3}, movements)
	})
}

func TestRaceLongCorridor(t *testing.T) {
	// 12x12 maze with one corridor: north from the start (11,0) to
	// (5,0), then east to the goal cell (5,5). 11 cells end to end.
	src, err := maze.ParseFile(longCorridorFile(t))
	assert.NoError(t, err)

	c := explore.New(src, explore.Options{})
	m, err := c.Run()
	assert.NoError(t, err)
	assert.True(t, c.GoalFound())
	assert.Equal(t, 22, c.Steps(), "11 cells out and 11 back")

	p, err := plan.Build(m, src.GoalCells(), plan.Options{})
	assert.NoError(t, err)

	e := New(src, m, p, Options{})
	assert.NoError(t, e.Run())
	assert.Equal(t, sim.Position{Row: 5, Col: 5}, e.Position())
	assert.Equal(t, 4, e.Actions(), "11 cells need 4 actions of at most 3 cells")

	var movements []int
	for rec := range e.Trace() {
		movements = append(movements, rec.Movement)
	}
	assert.Equal(t, []int{0, 3, 3, 3, 2}, movements)
}

// longCorridorFile writes the 12x12 single-corridor maze as a text
// definition, exercising the file loader on the way in.
func longCorridorFile(t *testing.T) string {
	t.Helper()
	m, err := maze.New(12)
	assert.NoError(t, err)
	for r := 11; r > 5; r-- {
		assert.NoError(t, m.OpenWall(sim.Position{Row: r, Col: 0}, sim.North))
	}
	for c := 0; c < 5; c++ {
		assert.NoError(t, m.OpenWall(sim.Position{Row: 5, Col: c}, sim.East))
	}

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

	path := filepath.Join(t.TempDir(), "corridor.txt")
	assert.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestRaceTrace(t *testing.T) {
	src := corridorMaze(t)
	m, p := preparedRun(t, src)

	e := New(src, m, p, Options{})
	assert.NoError(t, e.Run())

	var records []sim.Record
	for rec := range e.Trace() {
		records = append(records, rec)
	}
	assert.Len(t, records, e.Actions()+1, "one record per action plus the initial state")
	for i, rec := range records {
		assert.Equal(t, i, rec.Seq)
		assert.Equal(t, sim.PhaseRace, rec.Phase)
	}

	count := 0
	for range e.Trace() {
		count++
	}
	assert.Equal(t, len(records), count, "trace iterator restarts from the beginning")
}

func TestRaceNoRoute(t *testing.T) {
	src := corridorMaze(t)

	// An empty map plans no routes at all.
	empty := gridmap.New(src.Dim())
	p, err := plan.Build(empty, src.GoalCells(), plan.Options{})
	assert.NoError(t, err)

	e := New(src, empty, p, Options{})
	assert.ErrorIs(t, e.Run(), sim.ErrNoRoute)
}

func TestRaceBudget(t *testing.T) {
	src := corridorMaze(t)
	m, p := preparedRun(t, src)

	e := New(src, m, p, Options{MaxActions: 1})
	assert.ErrorIs(t, e.Run(), sim.ErrBudgetExceeded)
	assert.Equal(t, 1, e.Actions())
}

func TestRaceSensorConflict(t *testing.T) {
	src := corridorMaze(t)

	// A hand-built map that falsely records the start's east side open.
	m := gridmap.New(src.Dim())
	for r := 7; r > 3; r-- {
		assert.NoError(t, m.RecordOpen(sim.Position{Row: r, Col: 0}, sim.North))
	}
	for c := 0; c < 3; c++ {
		assert.NoError(t, m.RecordOpen(sim.Position{Row: 3, Col: c}, sim.East))
	}
	assert.NoError(t, m.RecordOpen(src.Start(), sim.East))

	p, err := plan.Build(m, src.GoalCells(), plan.Options{})
	assert.NoError(t, err)

	e := New(src, m, p, Options{})
	assert.ErrorIs(t, e.Run(), sim.ErrWallConflict, "re-sensing exposes the bad map fact")
}
