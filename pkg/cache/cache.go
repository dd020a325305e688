// Package cache provides the read-through view store used for per-worker
// dashboard data. Values are JSON encoded so both backends share semantics.
package cache

import (
	"context"
	"time"
)

// Store is a small key/value cache with TTLs.
// Get reports false, nil on a miss.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
