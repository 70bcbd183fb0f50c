package ratelimit

import (
	"context"
	"time"
)

// Store defines the interface for rate limit counters.
type Store interface {
	// Increment atomically adds one to the counter for key and returns the new
	// count. The first increment of a window attaches an expiry of window.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
