// Package cache provides the Redis-backed profile list cache. The cache is
// best-effort: every Redis failure degrades to a miss so aggregation always
// succeeds against the record store.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	platformredis "orlof/internal/platform/redis"
	"orlof/internal/profile"
)

const profilesKey = "orlof:profiles:all"

// Redis caches the aggregated profile list with a TTL.
type Redis struct {
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis constructs the cache. Returns nil when client is nil (Redis not
// configured), which the profile service treats as caching disabled.
func NewRedis(client *platformredis.Client, ttl time.Duration, logger *slog.Logger) *Redis {
	if client == nil {
		return nil
	}
	return &Redis{client: client, ttl: ttl, logger: logger}
}

func (c *Redis) Get(ctx context.Context) ([]profile.CombinedProfile, bool) {
	data, err := c.client.Get(ctx, profilesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var profiles []profile.CombinedProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		c.logger.WarnContext(ctx, "dropping corrupt profile cache entry", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return profiles, true
}

func (c *Redis) Set(ctx context.Context, profiles []profile.CombinedProfile) {
	data, err := json.Marshal(profiles)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to marshal profile cache entry", "error", err)
		return
	}
	if err := c.client.Set(ctx, profilesKey, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to write profile cache entry", "error", err)
	}
}

func (c *Redis) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, profilesKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate profile cache", "error", err)
	}
}
