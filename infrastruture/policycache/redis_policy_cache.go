// Package policycache caches computed policies in Redis, keyed by maze
// ID. Exploration is deterministic, so a policy computed once for a
// maze is valid for every later run of that maze.
package policycache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/beka-birhanu/micromouse-api/sim/plan"
)

const (
	defaultTTLSeconds = 24 * 60 * 60

	// policy value and planning lock key formats
	policyKeyFmt = "policy:%s"
	lockKeyFmt   = "policy:%s:plan_lock"
)

// RedisPolicyCache stores serialized policies with a TTL and guards
// policy computation with a distributed lock, so concurrent runs of the
// same maze plan only once.
type RedisPolicyCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// New creates a RedisPolicyCache with the provided Redis client.
// ttlSeconds <= 0 falls back to one day.
func New(client *redis.Client, ttlSeconds int) (*RedisPolicyCache, error) {
	if ttlSeconds <= 0 {
		ttlSeconds = defaultTTLSeconds
	}

	cache := &RedisPolicyCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	cache.locker = redsync.New(pool)
	return cache, nil
}

// GetOrCompute returns the cached policy for mazeID, or computes and
// stores it under the planning lock. cached reports a cache hit.
func (c *RedisPolicyCache) GetOrCompute(ctx context.Context, mazeID uuid.UUID, compute func() (*plan.Policy, error)) (*plan.Policy, bool, error) {
	key := fmt.Sprintf(policyKeyFmt, mazeID)

	if policy, err := c.get(ctx, key); err == nil {
		return policy, true, nil
	}

	mutex := c.locker.NewMutex(fmt.Sprintf(lockKeyFmt, mazeID))
	if err := mutex.Lock(); err != nil {
		return nil, false, fmt.Errorf("obtaining planning lock: %w", err)
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	// Another worker may have planned this maze while we waited.
	if policy, err := c.get(ctx, key); err == nil {
		return policy, true, nil
	}

	policy, err := compute()
	if err != nil {
		return nil, false, err
	}

	data, err := json.Marshal(policy)
	if err != nil {
		return nil, false, err
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return nil, false, err
	}

	return policy, false, nil
}

func (c *RedisPolicyCache) get(ctx context.Context, key string) (*plan.Policy, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var policy plan.Policy
	if err := json.Unmarshal(data, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}
