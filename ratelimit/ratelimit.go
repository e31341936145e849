package ratelimit

import (
	"sync"
	"time"
)

// Config configures the limiter.
type Config struct {
	// MaxRequests is the number of requests allowed per window.
	// Default: 10
	MaxRequests int

	// Window is the trailing interval the limit applies to.
	// Default: 1 minute
	Window time.Duration
}

// Limiter is a per-key sliding-window rate limiter.
//
// Checking and recording are deliberately decoupled: Allow is a pure
// query, so a caller can probe the limit without committing to a
// request (for example, to show a "try again later" message), and calls
// Record only once it decides to proceed.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Errors: admission denial is a boolean, never an error.
type Limiter struct {
	config Config

	mu      sync.Mutex
	windows map[string][]time.Time
}

// New creates a limiter.
func New(config Config) *Limiter {
	// Apply defaults
	if config.MaxRequests <= 0 {
		config.MaxRequests = 10
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}

	return &Limiter{
		config:  config,
		windows: make(map[string][]time.Time),
	}
}

// Allow reports whether key may make a request right now. It prunes
// timestamps that fell out of the window but records nothing.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.pruneLocked(key, time.Now())) < l.config.MaxRequests
}

// Record notes that key made a request now. It does not check the
// limit; callers are expected to have consulted Allow first.
func (l *Limiter) Record(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.windows[key] = append(l.pruneLocked(key, now), now)
}

// Remaining returns how many more requests key may make in the current
// window. Never negative.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := l.config.MaxRequests - len(l.pruneLocked(key, time.Now()))
	if n < 0 {
		n = 0
	}
	return n
}

// RetryAfter returns how long key must wait before Allow can report
// true again. Zero when a request is allowed immediately.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	ts := l.pruneLocked(key, now)
	if len(ts) < l.config.MaxRequests {
		return 0
	}

	// The oldest in-window timestamp is the first to leave the window.
	wait := ts[0].Add(l.config.Window).Sub(now)
	if wait < 0 {
		wait = 0
	}
	return wait
}

// Reset drops all recorded requests for every key.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.windows = make(map[string][]time.Time)
}

// pruneLocked drops timestamps outside the trailing window for key and
// returns what remains. Keys whose window empties are removed from the
// map so idle keys do not pin memory.
func (l *Limiter) pruneLocked(key string, now time.Time) []time.Time {
	ts := l.windows[key]
	cutoff := now.Add(-l.config.Window)

	// Timestamps are appended in order, so the stale part is a prefix.
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	ts = ts[i:]

	if len(ts) == 0 {
		delete(l.windows, key)
	} else {
		l.windows[key] = ts
	}
	return ts
}
