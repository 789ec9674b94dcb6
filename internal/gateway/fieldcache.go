package gateway

import (
	"context"
	"time"

	"FirebiAPI/internal/logger"

	"github.com/redis/go-redis/v9"
)

// FieldCache remembers which candidate field last matched for a
// (collection, tenant) pair, so repeat requests skip the probe walk. Cache
// failures only cost the shortcut, never the request.
type FieldCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFieldCache(rdb *redis.Client, ttl time.Duration) *FieldCache {
	return &FieldCache{rdb: rdb, ttl: ttl}
}

func cacheKey(collection, tenantID string) string {
	return "tenantfield:" + collection + ":" + tenantID
}

func (c *FieldCache) Get(ctx context.Context, collection, tenantID string) (string, bool) {
	field, err := c.rdb.Get(ctx, cacheKey(collection, tenantID)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("field_cache_get_failed", map[string]any{
				"collection": collection,
				"error":      err.Error(),
			})
		}
		return "", false
	}
	return field, true
}

func (c *FieldCache) Put(ctx context.Context, collection, tenantID, field string) {
	if err := c.rdb.Set(ctx, cacheKey(collection, tenantID), field, c.ttl).Err(); err != nil {
		logger.Warn("field_cache_set_failed", map[string]any{
			"collection": collection,
			"error":      err.Error(),
		})
	}
}
