// Package leaderboard ranks operators by their best run score in a
// Redis sorted set. Lower scores are better, so the ranking reads the
// set in ascending order and score updates only ever decrease.
package leaderboard

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/beka-birhanu/micromouse-api/service/i"
)

const defaultKey = "leaderboard:best_scores"

// RedisLeaderboard keeps best run scores in a sorted set.
type RedisLeaderboard struct {
	client *redis.Client
	key    string
}

// New creates a RedisLeaderboard with the provided Redis client. An
// empty key falls back to the default set name.
func New(client *redis.Client, key string) (*RedisLeaderboard, error) {
	if key == "" {
		key = defaultKey
	}
	return &RedisLeaderboard{
		client: client,
		key:    key,
	}, nil
}

// Publish records the score for username. ZAddLT keeps the stored score
// only when the new one is lower, so the set always holds each
// operator's best.
func (lb *RedisLeaderboard) Publish(ctx context.Context, username string, score float64) error {
	return lb.client.ZAddLT(ctx, lb.key, redis.Z{
		Score:  score,
		Member: username,
	}).Err()
}

// Top returns up to n entries, best (lowest) score first.
func (lb *RedisLeaderboard) Top(ctx context.Context, n int64) ([]i.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	members, err := lb.client.ZRangeWithScores(ctx, lb.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]i.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		username, _ := m.Member.(string)
		entries = append(entries, i.LeaderboardEntry{
			Username: username,
			Score:    m.Score,
		})
	}
	return entries, nil
}
