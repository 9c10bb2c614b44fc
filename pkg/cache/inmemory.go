package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type inMemoryCache struct {
	internal *gocache.Cache
}

// NewInMemory returns a process-local Cache backed by go-cache. Entries carry
// their own TTL, so no default expiration is set.
func NewInMemory(cleanupInterval time.Duration) Cache {
	return &inMemoryCache{
		internal: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (c *inMemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found := c.internal.Get(key)
	if !found {
		return nil, false, nil
	}
	data, ok := val.([]byte)
	if !ok {
		return nil, false, nil
	}
	return data, true, nil
}

func (c *inMemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.internal.Set(key, value, ttl)
	return nil
}

func (c *inMemoryCache) Delete(ctx context.Context, key string) error {
	c.internal.Delete(key)
	return nil
}

func (c *inMemoryCache) Close() error {
	c.internal.Flush()
	return nil
}
