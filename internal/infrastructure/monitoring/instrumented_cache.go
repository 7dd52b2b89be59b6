package monitoring

import (
	"context"
	"errors"
	"time"

	"github.com/mealwise/core/internal/ports/outbound"
)

// InstrumentedCache counts hits, misses and errors of the wrapped cache
type InstrumentedCache struct {
	next    outbound.CacheRepository
	metrics *Metrics
}

var _ outbound.CacheRepository = (*InstrumentedCache)(nil)

// InstrumentCache wraps a cache repository with operation metrics
func InstrumentCache(next outbound.CacheRepository, metrics *Metrics) *InstrumentedCache {
	return &InstrumentedCache{next: next, metrics: metrics}
}

func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.next.Get(ctx, key)
	switch {
	case err == nil:
		c.metrics.RecordCacheOperation("get", "hit")
	case errors.Is(err, outbound.ErrCacheMiss):
		c.metrics.RecordCacheOperation("get", "miss")
	default:
		c.metrics.RecordCacheOperation("get", "error")
	}
	return value, err
}

func (c *InstrumentedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.next.Set(ctx, key, value, ttl)
	c.metrics.RecordCacheOperation("set", result(err))
	return err
}

func (c *InstrumentedCache) Delete(ctx context.Context, key string) error {
	err := c.next.Delete(ctx, key)
	c.metrics.RecordCacheOperation("delete", result(err))
	return err
}

func (c *InstrumentedCache) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := c.next.Exists(ctx, key)
	c.metrics.RecordCacheOperation("exists", result(err))
	return ok, err
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Ping checks the wrapped cache when it supports it; in-process caches are
// always reachable
func (c *InstrumentedCache) Ping(ctx context.Context) error {
	if p, ok := c.next.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
