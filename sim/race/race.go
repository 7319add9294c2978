/*
Package race replays the agent through the maze along the planned
policy. The map learned during exploration is authoritative: the
executor re-senses defensively before moving, and any contradiction
between sensors and map aborts the run instead of triggering a replan.
*/
package race

import (
	"fmt"
	"iter"

	"github.com/beka-birhanu/micromouse-api/sim"
	"github.com/beka-birhanu/micromouse-api/sim/gridmap"
	"github.com/beka-birhanu/micromouse-api/sim/plan"
	"github.com/beka-birhanu/micromouse-api/sim/sensing"
)

// Options configures an Executor.
type Options struct {
	// MaxActions bounds the number of actions before the race fails
	// with sim.ErrBudgetExceeded. Zero means no bound.
	MaxActions int
}

// Executor follows a policy from the maze start to the goal region,
// batching straight runs of up to sim.MaxMovement cells per action.
type Executor struct {
	src     sim.Source
	adapter *sensing.Adapter
	policy  *plan.Policy
	opts    Options

	pos     sim.Position
	heading sim.Direction
	goal    map[sim.Position]struct{}
	actions int
	trace   []sim.Record
}

// New creates an executor at the maze start, heading North, reusing the
// exploration-phase map for defensive sensing.
func New(src sim.Source, m *gridmap.Map, policy *plan.Policy, opts Options) *Executor {
	goal := make(map[sim.Position]struct{}, len(src.GoalCells()))
	for _, g := range src.GoalCells() {
		goal[g] = struct{}{}
	}

	e := &Executor{
		src:     src,
		adapter: sensing.New(src, m),
		policy:  policy,
		opts:    opts,
		pos:     src.Start(),
		heading: sim.North,
		goal:    goal,
	}
	e.record(sim.RotateNone, 0)
	return e
}

// Run drives the agent until it enters the goal region. It fails when
// the policy has no route for the current cell, when a sensed wall
// contradicts the learned map, or when the action budget runs out.
func (e *Executor) Run() error {
	for {
		if _, inGoal := e.goal[e.pos]; inGoal {
			return nil
		}

		if e.opts.MaxActions > 0 && e.actions >= e.opts.MaxActions {
			return sim.ErrBudgetExceeded
		}

		d, ok := e.policy.Next(e.pos)
		if !ok {
			return fmt.Errorf("%w: cell (%d,%d)", sim.ErrNoRoute, e.pos.Row, e.pos.Col)
		}

		if err := e.apply(d, e.batch(d)); err != nil {
			return err
		}
	}
}

// batch counts how many consecutive cells ahead of pos share the
// recommended direction d, capped at sim.MaxMovement. The goal cells
// recommend nothing, so a batch never overshoots the goal.
func (e *Executor) batch(d sim.Direction) int {
	n := 1
	p := e.pos.Next(d)
	for n < sim.MaxMovement {
		next, ok := e.policy.Next(p)
		if !ok || next != d {
			break
		}
		p = p.Next(d)
		n++
	}
	return n
}

// apply performs one action: rotate toward d, then take n forward
// steps, validating each against the sensors and the learned map.
func (e *Executor) apply(d sim.Direction, n int) error {
	rot := sim.RotationTo(e.heading, d)
	e.heading = d

	for i := 0; i < n; i++ {
		if err := e.adapter.Sense(e.pos, e.heading); err != nil {
			return err
		}
		if !e.src.IsPermissible(e.pos, e.heading) {
			return fmt.Errorf("%w: (%d,%d) toward %s during race",
				sim.ErrBlockedMove, e.pos.Row, e.pos.Col, e.heading)
		}
		e.pos = e.pos.Next(e.heading)
	}

	e.actions++
	e.record(rot, n)
	return nil
}

func (e *Executor) record(rot sim.Rotation, movement int) {
	e.trace = append(e.trace, sim.Record{
		Seq:      len(e.trace),
		Phase:    sim.PhaseRace,
		Row:      e.pos.Row,
		Col:      e.pos.Col,
		Heading:  e.heading,
		Rotation: rot,
		Movement: movement,
	})
}

// Position returns the agent's current cell.
func (e *Executor) Position() sim.Position { return e.pos }

// Actions returns the number of actions issued so far.
func (e *Executor) Actions() int { return e.actions }

// Trace returns the race action sequence as a restartable iterator.
func (e *Executor) Trace() iter.Seq[sim.Record] {
	return func(yield func(sim.Record) bool) {
		for _, r := range e.trace {
			if !yield(r) {
				return
			}
		}
	}
}
