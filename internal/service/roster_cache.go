package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/amezav/registro-academico-api/internal/models"
)

const rosterCacheKey = "estudiantes:roster"

// RosterCache keeps the reduced student listing in redis. Mutating any
// student invalidates the entry; reads fall through to the database on any
// cache failure.
type RosterCache struct {
	client  *redis.Client
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration
}

// NewRosterCache constructs the cache. Returns nil when no client is
// available so callers can skip caching entirely.
func NewRosterCache(client *redis.Client, metrics *MetricsService, logger *zap.Logger, ttl time.Duration) *RosterCache {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterCache{client: client, metrics: metrics, logger: logger, ttl: ttl}
}

// Get returns the cached roster and whether it was present.
func (c *RosterCache) Get(ctx context.Context) ([]models.RosterEntry, bool) {
	payload, err := c.client.Get(ctx, rosterCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("roster cache read failed", zap.Error(err))
		}
		c.metrics.RecordCacheOperation(false)
		return nil, false
	}
	var entries []models.RosterEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		c.logger.Warn("roster cache payload corrupt", zap.Error(err))
		c.metrics.RecordCacheOperation(false)
		return nil, false
	}
	c.metrics.RecordCacheOperation(true)
	return entries, true
}

// Set stores the roster with the configured TTL.
func (c *RosterCache) Set(ctx context.Context, entries []models.RosterEntry) {
	payload, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("roster cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, rosterCacheKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("roster cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached roster.
func (c *RosterCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, rosterCacheKey).Err()
}
