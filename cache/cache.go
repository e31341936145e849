package cache

import (
	"sync"
	"time"
)

// Config configures the cache.
type Config struct {
	// MaxSize is the maximum number of entries held at once.
	// Default: 100
	MaxSize int

	// DefaultTTL is applied when Set is called without an explicit TTL.
	// Default: 5 minutes
	DefaultTTL time.Duration

	// SweepInterval is how often the background sweep removes expired
	// entries that nobody looks up anymore.
	// Default: 2 minutes
	SweepInterval time.Duration
}

// Stats is a point-in-time snapshot over currently-stored entries.
// Stored entries may include ones that have expired but not yet been
// swept or looked up.
type Stats struct {
	// Size is the number of stored entries.
	Size int

	// TotalHits is the sum of hit counts across stored entries.
	TotalHits int

	// AverageAge is the mean time since insertion across stored entries.
	AverageAge time.Duration

	// HitRate is TotalHits / Size, or 0 when the cache is empty.
	HitRate float64
}

type entry struct {
	value          any
	insertedAt     time.Time
	ttl            time.Duration
	hitCount       int
	lastAccessedAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return now.Sub(e.insertedAt) > e.ttl
}

// Cache is a bounded key/value store with per-entry expiry.
//
// Eviction at capacity removes the earliest-inserted entry, regardless
// of how recently it was accessed. This is FIFO, not LRU: the victim is
// chosen by insertion order alone, which keeps eviction O(1) and makes
// the victim predictable for callers that refresh keys in request order.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Ownership: values belong to the cache once inserted; callers must
//   not mutate a value through a retained alias after Set.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string // insertion order, oldest first

	config Config

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache and starts its background sweep.
// Call StopCleanup to stop the sweep when the cache is no longer needed.
func New(config Config) *Cache {
	// Apply defaults
	if config.MaxSize <= 0 {
		config.MaxSize = 100
	}
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = 5 * time.Minute
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = 2 * time.Minute
	}

	c := &Cache{
		entries: make(map[string]*entry),
		config:  config,
		stop:    make(chan struct{}),
	}

	go c.sweepLoop()

	return c
}

// Set stores value under key. A ttl <= 0 uses the configured DefaultTTL.
// Overwriting an existing key replaces its entry (fresh insertion time,
// hit count reset) but keeps its position in the eviction order. When
// the cache is full and key is new, the earliest-inserted entry is
// evicted first; Set never fails.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.config.DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		// Evict-then-insert must happen under one lock hold so the
		// size bound is never exceeded, even transiently.
		if len(c.entries) >= c.config.MaxSize {
			c.evictOldestLocked()
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = &entry{
		value:      value,
		insertedAt: time.Now(),
		ttl:        ttl,
	}
}

// Get returns the value stored under key. It returns (nil, false) when
// the key is unknown or its entry has expired; expired entries are
// deleted on the spot. A hit updates the entry's hit count and
// last-access time.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	now := time.Now()
	if e.expired(now) {
		c.removeLocked(key)
		return nil, false
	}

	e.hitCount++
	e.lastAccessedAt = now

	return e.value, true
}

// Has reports whether key holds an unexpired entry. Expired entries are
// deleted as in Get, but hit statistics are not touched.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}

	if e.expired(time.Now()) {
		c.removeLocked(key)
		return false
	}

	return true
}

// Delete removes key. Idempotent - no error on a missing key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.removeLocked(key)
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.order = c.order[:0]
}

// Reset returns the cache to its initial empty state. The background
// sweep keeps running; use StopCleanup to tear the cache down.
func (c *Cache) Reset() {
	c.Clear()
}

// Stats computes a snapshot over currently-stored entries.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Size: len(c.entries)}
	if s.Size == 0 {
		return s
	}

	now := time.Now()
	var totalAge time.Duration
	for _, e := range c.entries {
		s.TotalHits += e.hitCount
		totalAge += now.Sub(e.insertedAt)
	}
	s.AverageAge = totalAge / time.Duration(s.Size)
	s.HitRate = float64(s.TotalHits) / float64(s.Size)

	return s
}

// StopCleanup stops the background sweep. Safe to call more than once;
// only the first call has an effect. The cache remains usable, but
// expired entries are then removed only on lookup.
func (c *Cache) StopCleanup() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(c.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep removes every expired entry, bounding memory for keys nobody
// queries again. It may race with concurrent lookups on the same key;
// either order yields a correct outcome.
func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var expired []string
	for key, e := range c.entries {
		if e.expired(now) {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		c.removeLocked(key)
	}
}

func (c *Cache) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *Cache) removeLocked(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
