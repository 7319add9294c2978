package i

import (
	"context"

	"github.com/google/uuid"

	"github.com/beka-birhanu/micromouse-api/sim/plan"
)

// PolicyCache stores computed policies keyed by maze ID. Exploration is
// deterministic, so the policy for a maze never changes once computed.
type PolicyCache interface {
	// GetOrCompute returns the cached policy for mazeID, or runs
	// compute under a distributed lock, stores the result and returns
	// it. cached reports whether the policy came from the cache.
	GetOrCompute(ctx context.Context, mazeID uuid.UUID, compute func() (*plan.Policy, error)) (policy *plan.Policy, cached bool, err error)
}

// LeaderboardEntry is one leaderboard row. Score is a run score, lower
// is better.
type LeaderboardEntry struct {
	Username string
	Score    float64
}

// Leaderboard ranks operators by their best run score.
type Leaderboard interface {
	// Publish records the score for username, keeping the best one.
	Publish(ctx context.Context, username string, score float64) error

	// Top returns up to n entries, best score first.
	Top(ctx context.Context, n int64) ([]LeaderboardEntry, error)
}
