package observability

import (
	"context"
	"time"

	"go-bars-app/internal/core/ports"
)

// InstrumentedCache is a decorator to intercept cache calls and record metrics.
type InstrumentedCache struct {
	inner ports.Cache
}

// NewInstrumentedCache creates a new instrumented cache wrapper.
func NewInstrumentedCache(inner ports.Cache) *InstrumentedCache {
	return &InstrumentedCache{inner: inner}
}

var _ ports.Cache = (*InstrumentedCache)(nil)

func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, found, err := c.inner.Get(ctx, key)
	if err == nil {
		if found {
			cacheHits.Inc()
		} else {
			cacheMisses.Inc()
		}
	}
	return data, found, err
}

func (c *InstrumentedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, key, data, ttl)
}

func (c *InstrumentedCache) Invalidate(ctx context.Context, keys ...string) error {
	return c.inner.Invalidate(ctx, keys...)
}
