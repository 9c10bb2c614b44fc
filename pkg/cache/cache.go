package cache

import (
	"context"
	"fmt"
	"time"

	"trendbot/config"
)

// Cache is the fast tier: a key-value store with a per-key TTL.
//
// Get reports found=false for an absent or expired key; a non-nil error means
// the tier itself is unavailable, never "not found". Set always overwrites
// the value and resets the TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New constructs the cache driver selected by cfg.Driver.
func New(cfg config.Cache) (Cache, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewInMemory(cfg.CleanupInterval), nil
	case "redis":
		return NewRedis(cfg)
	default:
		return nil, fmt.Errorf("unknown cache driver: %q", cfg.Driver)
	}
}
