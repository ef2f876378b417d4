package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"assay/internal/assessment/ports"
)

// CachedSource wraps a reputation source with a Redis read-through cache.
// Cache failures degrade to a direct call; the screen itself never fails
// because the cache is down.
type CachedSource struct {
	inner  ports.ReputationSource
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSource decorates inner with caching.
func NewCachedSource(inner ports.ReputationSource, client *redis.Client, ttl time.Duration, logger *slog.Logger) (*CachedSource, error) {
	if inner == nil {
		return nil, fmt.Errorf("reputation source is required")
	}
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive")
	}
	return &CachedSource{inner: inner, client: client, ttl: ttl, logger: logger}, nil
}

var _ ports.ReputationSource = (*CachedSource)(nil)

func (c *CachedSource) CheckReputation(ctx context.Context, displayName, entityName string) (*ports.ReputationReport, error) {
	key := cacheKey(displayName, entityName)

	if cached, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var report ports.ReputationReport
		if err := json.Unmarshal(cached, &report); err == nil {
			return &report, nil
		}
		// Undecodable entry: fall through and overwrite it.
	} else if err != redis.Nil && c.logger != nil {
		c.logger.WarnContext(ctx, "reputation cache read failed", "error", err)
	}

	report, err := c.inner.CheckReputation(ctx, displayName, entityName)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(report); err == nil {
		if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil && c.logger != nil {
			c.logger.WarnContext(ctx, "reputation cache write failed", "error", err)
		}
	}

	return report, nil
}

func (c *CachedSource) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

func cacheKey(displayName, entityName string) string {
	return fmt.Sprintf("assay:reputation:%s|%s", displayName, entityName)
}
