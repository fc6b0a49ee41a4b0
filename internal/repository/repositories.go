package repository

import (
	"github.com/redis/go-redis/v9"
)

// memoryCacheEntries bounds the in-process cache
const memoryCacheEntries = 1000

// Repositories holds all repository instances
type Repositories struct {
	Projections ProjectionCache
}

// NewRepositories creates all repository instances. A nil client selects
// the in-process cache.
func NewRepositories(rdb *redis.Client) *Repositories {
	if rdb != nil {
		return &Repositories{Projections: NewRedisProjectionCache(rdb)}
	}
	return &Repositories{Projections: NewMemoryProjectionCache(memoryCacheEntries)}
}
