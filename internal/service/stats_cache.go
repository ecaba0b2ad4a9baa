package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/persistence"
)

const statsCacheKey = "employees:stats:summary"

// StatsCache keeps the latest summary in Redis for a short TTL. All cache
// failures degrade to direct reads.
type StatsCache struct {
	redis *persistence.Redis
	ttl   time.Duration
}

// NewStatsCache wraps the Redis client. A nil client or non-positive TTL
// disables caching.
func NewStatsCache(redis *persistence.Redis, ttl time.Duration) *StatsCache {
	if redis == nil || redis.Client == nil || ttl <= 0 {
		return nil
	}
	return &StatsCache{redis: redis, ttl: ttl}
}

// Get returns the cached summary if present.
func (c *StatsCache) Get(ctx context.Context) (*domain.EmployeeStats, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.redis.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var stats domain.EmployeeStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

// Set stores the summary under the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats *domain.EmployeeStats) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	_ = c.redis.Client.Set(ctx, statsCacheKey, raw, c.ttl).Err()
}

// Invalidate drops the cached summary.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.redis.Client.Del(ctx, statsCacheKey).Err()
}
