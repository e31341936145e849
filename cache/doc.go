// Package cache provides a bounded in-memory TTL cache for API responses.
//
// Entries expire a fixed duration after insertion and are removed both
// lazily on lookup and eagerly by a background sweep. When the cache is
// full, the earliest-inserted entry is evicted (FIFO by insertion, not
// LRU). All operations are safe for concurrent use.
package cache
