package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sjperalta/fintera-invest/internal/projection"
)

// ErrCacheMiss is returned when no live entry exists for a key
var ErrCacheMiss = errors.New("cache miss")

// ProjectionCache memoizes engine output keyed by Parameters.CacheKey.
// It never holds state a projection depends on.
type ProjectionCache interface {
	Get(ctx context.Context, key string) (*projection.Projection, error)
	Set(ctx context.Context, key string, p *projection.Projection, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	CleanExpired(ctx context.Context) (int, error)
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryProjectionCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

// NewMemoryProjectionCache creates an in-process cache bounded to maxEntries
func NewMemoryProjectionCache(maxEntries int) ProjectionCache {
	return &memoryProjectionCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *memoryProjectionCache) Get(ctx context.Context, key string) (*projection.Projection, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, ErrCacheMiss
	}

	// Entries are stored encoded so callers can never mutate them
	var p projection.Projection
	if err := json.Unmarshal(entry.data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *memoryProjectionCache) Set(ctx context.Context, key string, p *projection.Projection, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.cleanLocked()
		if len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}

	c.entries[key] = memoryEntry{data: data, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *memoryProjectionCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryProjectionCache) CleanExpired(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleanLocked(), nil
}

func (c *memoryProjectionCache) cleanLocked() int {
	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// evictOldestLocked drops the entry closest to expiry
func (c *memoryProjectionCache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey, oldest = key, entry.expiresAt
		}
	}
	delete(c.entries, oldestKey)
}
