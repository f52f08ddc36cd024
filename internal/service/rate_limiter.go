package service

import (
	"sync"
	"time"
)

// RateLimiter is an in-process sliding-window counter keyed by an
// arbitrary identifier (e.g. "signup:"+ip). State lives in memory and
// does not survive restarts; under horizontal scaling each instance
// counts independently. Known limitation, not silently assumed away.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	done    chan struct{}
}

type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// RateLimitResult reports the outcome of a Check call. ResetAt is
// always populated so callers can compute a retry-after duration.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RetryAfterMinutes returns the remaining window as whole minutes,
// rounded up.
func (r RateLimitResult) RetryAfterMinutes(now time.Time) int {
	left := r.ResetAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + time.Minute - 1) / time.Minute)
}

// NewRateLimiter creates a limiter and starts its background sweep.
// The sweep only bounds memory growth; expired entries are treated as
// fresh on access regardless of sweep timing. Call Stop on shutdown.
func NewRateLimiter(sweepInterval time.Duration) *RateLimiter {
	l := &RateLimiter{
		entries: make(map[string]*rateLimitEntry),
		done:    make(chan struct{}),
	}

	go l.sweepLoop(sweepInterval)

	return l
}

// Check records one attempt for the identifier and reports whether it
// is within the limit. The counter keeps incrementing past the
// threshold while the window is open; it is not capped.
func (l *RateLimiter) Check(identifier string, maxAttempts int, window time.Duration) RateLimitResult {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[identifier]
	if !ok || entry.resetAt.Before(now) {
		entry = &rateLimitEntry{count: 1, resetAt: now.Add(window)}
		l.entries[identifier] = entry
		return RateLimitResult{Allowed: true, Remaining: maxAttempts - 1, ResetAt: entry.resetAt}
	}

	entry.count++

	if entry.count > maxAttempts {
		return RateLimitResult{Allowed: false, Remaining: 0, ResetAt: entry.resetAt}
	}

	return RateLimitResult{Allowed: true, Remaining: maxAttempts - entry.count, ResetAt: entry.resetAt}
}

// Reset forgets the identifier's window.
func (l *RateLimiter) Reset(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, identifier)
}

// Stop terminates the background sweep.
func (l *RateLimiter) Stop() {
	close(l.done)
}

func (l *RateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep(time.Now())
		case <-l.done:
			return
		}
	}
}

func (l *RateLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, entry := range l.entries {
		if entry.resetAt.Before(now) {
			delete(l.entries, key)
		}
	}
}
