// Package ratelimit provides a keyed rate limiter using the token bucket
// algorithm. It supports both non-blocking (Allow) and blocking (Wait)
// operations.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// pruneAfter is how long a key may sit idle before its limiter is dropped.
const pruneAfter = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Keyed manages per-key rate limiting. Each unique key gets its own
// independent token bucket. Keys are typically client IPs for inbound
// protection or hostnames for outbound politeness.
type Keyed struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed rate limiter allowing rps requests per second with the
// given burst per key. Idle keys are pruned in the background.
func New(rps float64, burst int) *Keyed {
	k := &Keyed{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go k.prune()

	return k
}

// Allow reports whether a request for the key should be admitted right now.
// Use for inbound request protection.
func (k *Keyed) Allow(key string) bool {
	return k.limiter(key).Allow()
}

// Wait blocks until a request for the key is allowed or ctx is canceled.
// Use for outbound requests.
func (k *Keyed) Wait(ctx context.Context, key string) error {
	return k.limiter(key).Wait(ctx)
}

func (k *Keyed) limiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

// Stop shuts down the background pruning goroutine.
func (k *Keyed) Stop() {
	k.stopOnce.Do(func() {
		close(k.done)
	})
}

func (k *Keyed) prune() {
	ticker := time.NewTicker(pruneAfter / 2)
	defer ticker.Stop()

	for {
		select {
		case <-k.done:
			return
		case now := <-ticker.C:
			k.pruneOnce(now)
		}
	}
}

func (k *Keyed) pruneOnce(now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key, e := range k.entries {
		if now.Sub(e.lastSeen) > pruneAfter {
			delete(k.entries, key)
		}
	}
}
