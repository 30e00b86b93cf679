package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"go-bars-app/internal/core/ports"
)

type Adapter struct {
	client *redis.Client
}

func NewAdapter(addr string) *Adapter {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Adapter{client: rdb}
}

// Ensure Adapter implements ports.Cache
var _ ports.Cache = (*Adapter)(nil)

// Prefix namespaces every key written by the service.
const Prefix = "bars:"

// Get reports found=false on a miss; err is reserved for Redis failures.
func (a *Adapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := a.client.Get(ctx, Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (a *Adapter) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return a.client.Set(ctx, Prefix+key, data, ttl).Err()
}

func (a *Adapter) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = Prefix + k
	}
	return a.client.Del(ctx, prefixed...).Err()
}

// Ping checks connectivity for the health endpoint.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

func (a *Adapter) Close() error {
	return a.client.Close()
}
