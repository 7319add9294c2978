/*
Package explore implements the mapping phase: a depth-first traversal of
the unknown maze driven only by the three range sensors, with Trémaux
marks (per-cell visit counts and per-corridor traversal counts) deciding
where to go next and when to turn back.

The controller is an explicit state machine stepped one transition at a
time, with an explicit stack of return points instead of recursion, so
its progress can be inspected and tested mid-run.
*/
package explore

import (
	"fmt"
	"iter"

	"github.com/beka-birhanu/micromouse-api/sim"
	"github.com/beka-birhanu/micromouse-api/sim/gridmap"
	"github.com/beka-birhanu/micromouse-api/sim/sensing"
)

// State is the controller's current phase of work.
type State uint8

const (
	StateEnterCell State = iota
	StateChooseDirection
	StateMove
	StateBacktrack
	StateDone
)

func (s State) String() string {
	switch s {
	case StateEnterCell:
		return "enter_cell"
	case StateChooseDirection:
		return "choose_direction"
	case StateMove:
		return "move"
	case StateBacktrack:
		return "backtrack"
	default:
		return "done"
	}
}

// TerminationMode selects when exploration declares itself finished.
// Independent of mode, exhausting the step budget always terminates
// with a best-effort map, and running out of unexplored corridors
// (which also returns the agent to the start cell) always terminates.
type TerminationMode uint8

const (
	// TermGoalAndHome explores everything reachable and returns to the
	// start cell before finishing. This is the default.
	TermGoalAndHome TerminationMode = iota

	// TermFirstGoal stops the moment the agent first enters the goal
	// region, leaving the rest of the maze unmapped.
	TermFirstGoal
)

// DefaultStepBudget caps the number of actions when the caller does not
// set one.
const DefaultStepBudget = 1000

// Options configures a Controller.
type Options struct {
	// StepBudget is the maximum number of actions before exploration is
	// forced to end. Zero means DefaultStepBudget.
	StepBudget int

	// Mode selects the termination policy.
	Mode TerminationMode
}

// Controller drives the exploration phase over a maze source.
type Controller struct {
	src     sim.Source
	m       *gridmap.Map
	adapter *sensing.Adapter
	opts    Options

	state   State
	pos     sim.Position
	start   sim.Position
	heading sim.Direction
	steps   int
	err     error

	goal      map[sim.Position]struct{}
	goalFound bool

	chosen sim.Direction
	parent map[sim.Position]sim.Direction // direction back toward the first-entry predecessor
	stack  []sim.Position                 // return points from start to the current cell

	trace []sim.Record
}

// New creates a controller positioned at the maze start, heading North,
// with an empty map.
func New(src sim.Source, opts Options) *Controller {
	if opts.StepBudget <= 0 {
		opts.StepBudget = DefaultStepBudget
	}

	m := gridmap.New(src.Dim())
	goal := make(map[sim.Position]struct{}, len(src.GoalCells()))
	for _, g := range src.GoalCells() {
		goal[g] = struct{}{}
	}

	c := &Controller{
		src:     src,
		m:       m,
		adapter: sensing.New(src, m),
		opts:    opts,
		state:   StateEnterCell,
		pos:     src.Start(),
		start:   src.Start(),
		heading: sim.North,
		goal:    goal,
		parent:  make(map[sim.Position]sim.Direction),
	}
	c.record(sim.RotateNone, 0)
	return c
}

// Run steps the controller to completion and returns the learned map.
// A best-effort map from a budget-exhausted run is returned without
// error; sensing conflicts and blocked moves are returned as fatal.
func (c *Controller) Run() (*gridmap.Map, error) {
	for {
		done, err := c.Step()
		if err != nil {
			return c.m, err
		}
		if done {
			return c.m, nil
		}
	}
}

// Step performs a single state transition. It reports whether the
// controller has reached StateDone.
func (c *Controller) Step() (bool, error) {
	switch c.state {
	case StateEnterCell:
		return c.enterCell()
	case StateChooseDirection:
		return c.chooseDirection()
	case StateMove:
		return c.move()
	case StateBacktrack:
		return c.backtrack()
	default:
		return true, c.err
	}
}

// enterCell marks the visit, senses the surrounding walls and checks
// for goal arrival.
func (c *Controller) enterCell() (bool, error) {
	c.m.MarkVisited(c.pos)

	if err := c.adapter.Sense(c.pos, c.heading); err != nil {
		return true, c.fail(err)
	}

	if _, inGoal := c.goal[c.pos]; inGoal {
		c.goalFound = true
		if c.opts.Mode == TermFirstGoal {
			c.state = StateDone
			return true, nil
		}
	}

	c.state = StateChooseDirection
	return false, nil
}

// chooseDirection picks the next corridor by Trémaux priority: the
// first direction in the fixed North, East, South, West order that is
// known open, never yet traversed from this cell and leads to an
// unvisited cell. With no such corridor left the controller backtracks.
func (c *Controller) chooseDirection() (bool, error) {
	for _, d := range c.m.NeighborsOpen(c.pos) {
		if c.m.Traversals(c.pos, d) != 0 {
			continue
		}
		if c.m.Visits(c.pos.Next(d)) != 0 {
			continue
		}
		c.chosen = d
		c.state = StateMove
		return false, nil
	}

	c.state = StateBacktrack
	return false, nil
}

// move walks one cell into the chosen corridor, pushing the current
// cell as a return point.
func (c *Controller) move() (bool, error) {
	from := c.pos
	if err := c.advance(c.chosen); err != nil {
		return true, c.fail(err)
	}

	c.stack = append(c.stack, from)
	c.parent[c.pos] = c.chosen.Opposite()

	if c.budgetExhausted() {
		return true, nil
	}
	c.state = StateEnterCell
	return false, nil
}

// backtrack retreats one cell toward the parent from which the current
// cell was first entered. An empty stack means the agent is back at the
// start with nothing left to explore.
func (c *Controller) backtrack() (bool, error) {
	if len(c.stack) == 0 {
		c.state = StateDone
		return true, nil
	}

	back, ok := c.parent[c.pos]
	if !ok {
		return true, c.fail(fmt.Errorf("no return direction recorded for (%d,%d)", c.pos.Row, c.pos.Col))
	}
	if err := c.advance(back); err != nil {
		return true, c.fail(err)
	}
	c.stack = c.stack[:len(c.stack)-1]

	if c.budgetExhausted() {
		return true, nil
	}
	c.state = StateChooseDirection
	return false, nil
}

// advance rotates toward d, validates the move against ground truth,
// marks the corridor traversed and takes one step.
func (c *Controller) advance(d sim.Direction) error {
	if !c.src.IsPermissible(c.pos, d) {
		return fmt.Errorf("%w: (%d,%d) toward %s", sim.ErrBlockedMove, c.pos.Row, c.pos.Col, d)
	}

	rot := sim.RotationTo(c.heading, d)
	c.heading = d
	c.m.MarkTraversed(c.pos, d)
	c.pos = c.pos.Next(d)
	c.steps++
	c.record(rot, 1)
	return nil
}

// budgetExhausted ends the run between actions once the step budget is
// spent. This is forced best-effort termination, not an error.
func (c *Controller) budgetExhausted() bool {
	if c.steps >= c.opts.StepBudget {
		c.state = StateDone
		return true
	}
	return false
}

func (c *Controller) fail(err error) error {
	c.err = err
	c.state = StateDone
	return err
}

func (c *Controller) record(rot sim.Rotation, movement int) {
	c.trace = append(c.trace, sim.Record{
		Seq:      len(c.trace),
		Phase:    sim.PhaseExplore,
		Row:      c.pos.Row,
		Col:      c.pos.Col,
		Heading:  c.heading,
		Rotation: rot,
		Movement: movement,
		Visits:   c.m.Visits(c.pos),
	})
}

// Map returns the learned map. It is complete once Step reports done.
func (c *Controller) Map() *gridmap.Map { return c.m }

// State returns the controller's current state.
func (c *Controller) State() State { return c.state }

// Position returns the agent's current cell.
func (c *Controller) Position() sim.Position { return c.pos }

// Heading returns the agent's current facing.
func (c *Controller) Heading() sim.Direction { return c.heading }

// Steps returns the number of actions issued so far.
func (c *Controller) Steps() int { return c.steps }

// GoalFound reports whether the agent has entered the goal region.
func (c *Controller) GoalFound() bool { return c.goalFound }

// Trace returns the action/state sequence as a restartable iterator;
// every call replays the records from the beginning.
func (c *Controller) Trace() iter.Seq[sim.Record] {
	return func(yield func(sim.Record) bool) {
		for _, r := range c.trace {
			if !yield(r) {
				return
			}
		}
	}
}
