// Package ratelimit provides a token-bucket throttle for bulk repository
// operations, one limiter per key (a throttled repository uses its entity
// kind, e.g. "quote_line"), so a single process cannot flood the store
// with unbounded CreateMany/UpdateMany/DeleteMany batches.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Throttle hands out per-key rate limiters lazily, one limiter per
// bulk-operation key.
type Throttle struct {
	mu             sync.RWMutex
	limiters       map[string]*rate.Limiter
	requestsPerSec float64
	burst          int
}

// New creates a Throttle. requestsPerSec and burst configure every
// lazily-created limiter; callers that need per-key overrides can wrap
// Throttle or maintain several instances.
func New(requestsPerSec float64, burst int) *Throttle {
	return &Throttle{
		limiters:       make(map[string]*rate.Limiter),
		requestsPerSec: requestsPerSec,
		burst:          burst,
	}
}

func (t *Throttle) limiterFor(key string) *rate.Limiter {
	t.mu.RLock()
	l, ok := t.limiters[key]
	t.mu.RUnlock()
	if ok {
		return l
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.limiters[key]; ok {
		return l
	}
	l = rate.NewLimiter(rate.Limit(t.requestsPerSec), t.burst)
	t.limiters[key] = l
	return l
}

// Wait blocks until a bulk operation scoped to key is allowed to proceed,
// or until ctx is cancelled.
func (t *Throttle) Wait(ctx context.Context, key string) error {
	return t.limiterFor(key).Wait(ctx)
}

// Allow reports whether a bulk operation scoped to key may proceed
// immediately, without blocking.
func (t *Throttle) Allow(key string) bool {
	return t.limiterFor(key).Allow()
}
