// Package service implements the application services: running
// simulations, managing the maze catalog and authenticating operators.
package service

import (
	"iter"

	"github.com/beka-birhanu/micromouse-api/sim"
	"github.com/beka-birhanu/micromouse-api/sim/explore"
	"github.com/beka-birhanu/micromouse-api/sim/gridmap"
	"github.com/beka-birhanu/micromouse-api/sim/plan"
	"github.com/beka-birhanu/micromouse-api/sim/race"
)

const (
	// DefaultTimeBudget is the shared action budget for one run,
	// exploration and race together.
	DefaultTimeBudget = 1000

	// exploreScoreMult weighs exploration effort into the final score.
	exploreScoreMult = 1.0 / 30.0
)

// PlanFunc builds a policy from a learned map and goal region. The run
// service injects a cache-backed implementation; the default is a plain
// plan.Build.
type PlanFunc func(m *gridmap.Map, goal []sim.Position) (*plan.Policy, error)

// SimOptions configures a simulation.
type SimOptions struct {
	// TimeBudget is the total action budget across both phases.
	// Zero means DefaultTimeBudget.
	TimeBudget int

	// StepCost is the planner's cost per cell step. Zero means 1.
	StepCost int

	// Term selects the exploration termination policy.
	Term explore.TerminationMode

	// Plan overrides policy construction, e.g. with a cached lookup.
	Plan PlanFunc
}

// SimResult is the outcome of one simulation. On failure the fields
// hold whatever the run produced before aborting.
type SimResult struct {
	Map    *gridmap.Map
	Policy *plan.Policy

	GoalFound      bool
	ExploreActions int
	RaceActions    int

	// Score is raceActions + exploreActions/30, lower is better.
	// Only meaningful when the run completed.
	Score float64

	trace []sim.Record
}

// Trace returns the combined explore and race trace as a restartable
// iterator; every call replays from the first record.
func (r *SimResult) Trace() iter.Seq[sim.Record] {
	return func(yield func(sim.Record) bool) {
		for _, rec := range r.trace {
			if !yield(rec) {
				return
			}
		}
	}
}

// Simulate drives the full explore, plan and race cycle over one maze
// source. The phases run strictly in sequence: the exploration
// controller owns the map, hands it read-only to the planner, and the
// race executor replays the resulting policy.
//
// Exploration ending on an exhausted budget is not an error; the race
// then runs against the best-effort map and fails only if no route to
// the goal was learned. Sensing conflicts, blocked moves and a
// routeless start cell abort the run.
func Simulate(src sim.Source, opts SimOptions) (*SimResult, error) {
	if opts.TimeBudget <= 0 {
		opts.TimeBudget = DefaultTimeBudget
	}
	planFn := opts.Plan
	if planFn == nil {
		planFn = func(m *gridmap.Map, goal []sim.Position) (*plan.Policy, error) {
			return plan.Build(m, goal, plan.Options{StepCost: opts.StepCost})
		}
	}

	result := &SimResult{}

	controller := explore.New(src, explore.Options{
		StepBudget: opts.TimeBudget,
		Mode:       opts.Term,
	})
	m, err := controller.Run()
	result.Map = m
	result.GoalFound = controller.GoalFound()
	result.ExploreActions = controller.Steps()
	result.collect(controller.Trace())
	if err != nil {
		return result, err
	}

	policy, err := planFn(m, src.GoalCells())
	if err != nil {
		return result, err
	}
	result.Policy = policy

	remaining := opts.TimeBudget - result.ExploreActions
	if remaining <= 0 {
		return result, sim.ErrBudgetExceeded
	}

	executor := race.New(src, m, policy, race.Options{MaxActions: remaining})
	err = executor.Run()
	result.RaceActions = executor.Actions()
	result.collect(executor.Trace())
	if err != nil {
		return result, err
	}

	result.Score = float64(result.RaceActions) + exploreScoreMult*float64(result.ExploreActions)
	return result, nil
}

func (r *SimResult) collect(records iter.Seq[sim.Record]) {
	for rec := range records {
		rec.Seq = len(r.trace)
		r.trace = append(r.trace, rec)
	}
}
