package service

import (
	"context"
	"fmt"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/beka-birhanu/micromouse-api/sim"
	"github.com/beka-birhanu/micromouse-api/sim/gridmap"
	"github.com/beka-birhanu/micromouse-api/sim/plan"
	"github.com/google/uuid"
)

// RunOptions holds the tunables of the run service.
type RunOptions struct {
	// TimeBudget is the total action budget per run. Zero means
	// DefaultTimeBudget.
	TimeBudget int

	// StepCost is the planner's cost per cell step. Zero means 1.
	StepCost int
}

// Runs executes simulation runs against stored mazes and persists the
// outcomes. Policies are served from the cache when the maze was raced
// before; exploration is deterministic so a cached policy stays valid.
type Runs struct {
	runRepo     i.RunRepo
	mazeRepo    i.MazeRepo
	userRepo    i.UserRepo
	policyCache i.PolicyCache
	leaderboard i.Leaderboard
	logger      i.Logger
	opts        RunOptions
}

// NewRunService wires a Runs service.
func NewRunService(
	runRepo i.RunRepo,
	mazeRepo i.MazeRepo,
	userRepo i.UserRepo,
	policyCache i.PolicyCache,
	leaderboard i.Leaderboard,
	logger i.Logger,
	opts RunOptions,
) (*Runs, error) {
	if opts.TimeBudget <= 0 {
		opts.TimeBudget = DefaultTimeBudget
	}
	return &Runs{
		runRepo:     runRepo,
		mazeRepo:    mazeRepo,
		userRepo:    userRepo,
		policyCache: policyCache,
		leaderboard: leaderboard,
		logger:      logger,
		opts:        opts,
	}, nil
}

// Execute runs the full explore/plan/race cycle for the operator on the
// stored maze, persists the run and publishes the score. A failed
// simulation is persisted too, with its failure reason and partial
// trace, and returned without error; only infrastructure problems
// surface as errors.
func (s *Runs) Execute(ctx context.Context, userID, mazeID uuid.UUID) (*dmn.Run, error) {
	record, err := s.mazeRepo.ByID(mazeID)
	if err != nil {
		return nil, err
	}
	src, err := record.Maze()
	if err != nil {
		return nil, err
	}

	run := dmn.NewRun(mazeID, userID)

	result, simErr := Simulate(src, SimOptions{
		TimeBudget: s.opts.TimeBudget,
		StepCost:   s.opts.StepCost,
		Plan: func(m *gridmap.Map, goal []sim.Position) (*plan.Policy, error) {
			policy, cached, err := s.policyCache.GetOrCompute(ctx, mazeID, func() (*plan.Policy, error) {
				return plan.Build(m, goal, plan.Options{StepCost: s.opts.StepCost})
			})
			if cached {
				s.logger.Info(fmt.Sprintf("Policy for maze %s served from cache", mazeID))
			}
			return policy, err
		},
	})

	run.GoalFound = result.GoalFound
	run.ExploreSteps = result.ExploreActions
	run.RaceSteps = result.RaceActions
	run.AppendTrace(result.Trace())

	if simErr != nil {
		run.Status = dmn.RunFailed
		run.FailReason = simErr.Error()
		s.logger.Error(fmt.Sprintf("Run %s failed on maze %s: %v", run.ID, mazeID, simErr))
	} else {
		run.Status = dmn.RunCompleted
		run.Score = result.Score
		s.logger.Info(fmt.Sprintf("Run %s completed on maze %s: score %.3f", run.ID, mazeID, run.Score))
	}

	if err := s.runRepo.Save(run); err != nil {
		return nil, err
	}

	if run.Status == dmn.RunCompleted {
		s.publishScore(ctx, userID, run.Score)
	}

	return run, nil
}

// Get retrieves a persisted run.
func (s *Runs) Get(id uuid.UUID) (*dmn.Run, error) {
	return s.runRepo.ByID(id)
}

// publishScore updates the operator's best score and the leaderboard.
// Both are best-effort; a run is not failed over scoreboard trouble.
func (s *Runs) publishScore(ctx context.Context, userID uuid.UUID, score float64) {
	user, err := s.userRepo.ByID(userID)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Loading user %s for score update: %v", userID, err))
		return
	}

	if !user.ImproveBestScore(score) {
		return
	}

	if err := s.userRepo.Save(user); err != nil {
		s.logger.Error(fmt.Sprintf("Saving best score for %s: %v", user.Username, err))
	}
	if err := s.leaderboard.Publish(ctx, user.Username, score); err != nil {
		s.logger.Error(fmt.Sprintf("Publishing score for %s: %v", user.Username, err))
	}
}
