// Package cache keeps hot dashboard reads (room-status summary) in Redis.
// Every successful room/booking mutation invalidates the summary so the
// next read reflects the new state. The cache is optional: with no Redis
// address configured all operations are no-ops.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const roomSummaryKey = "vph:rooms:summary"

// SummaryTTL bounds staleness even if an invalidation is missed.
const SummaryTTL = 5 * time.Minute

type Cache struct {
	client *redis.Client
	log    *zap.Logger
}

// New connects to Redis at addr. An empty addr disables the cache.
func New(addr, password string, db int, log *zap.Logger) *Cache {
	if addr == "" {
		return &Cache{log: log}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{client: client, log: log}
}

// Enabled reports whether a Redis backend is configured.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetRoomSummary returns the cached status->count map, if present.
func (c *Cache) GetRoomSummary(ctx context.Context) (map[string]int64, bool) {
	if !c.Enabled() {
		return nil, false
	}
	raw, err := c.client.Get(ctx, roomSummaryKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("room summary cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var summary map[string]int64
	if err := json.Unmarshal(raw, &summary); err != nil {
		c.log.Warn("room summary cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return summary, true
}

// SetRoomSummary stores the status->count map. Best effort.
func (c *Cache) SetRoomSummary(ctx context.Context, summary map[string]int64) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, roomSummaryKey, raw, SummaryTTL).Err(); err != nil {
		c.log.Warn("room summary cache write failed", zap.Error(err))
	}
}

// InvalidateRooms drops the cached summary. Callers treat a failure here
// as a partial-operation outcome: the store already committed, so stale
// reads are possible until the TTL expires.
func (c *Cache) InvalidateRooms(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Del(ctx, roomSummaryKey).Err()
}
