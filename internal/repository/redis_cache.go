package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sjperalta/fintera-invest/internal/projection"
)

const redisKeyPrefix = "fintera-invest:projection:"

type redisProjectionCache struct {
	client *redis.Client
}

// NewRedisProjectionCache creates a cache shared by every API replica
func NewRedisProjectionCache(client *redis.Client) ProjectionCache {
	return &redisProjectionCache{client: client}
}

// NewRedisClient connects to addr and verifies the connection
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (r *redisProjectionCache) Get(ctx context.Context, key string) (*projection.Projection, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var p projection.Projection
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *redisProjectionCache) Set(ctx context.Context, key string, p *projection.Projection, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err()
}

func (r *redisProjectionCache) Invalidate(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisKeyPrefix+key).Err()
}

// CleanExpired is a no-op; Redis expires keys itself
func (r *redisProjectionCache) CleanExpired(ctx context.Context) (int, error) {
	return 0, nil
}
