// Package telemetry provides passive observers for the resilience layer:
// a bounded memory sampler, a named-timer performance recorder, and a
// structured JSON logger.
//
// Observers never alter the control flow of the cache, deduplicator,
// rate limiter, or retry executor. They exist so an external dashboard
// can correlate cache and retry behavior with resource pressure.
package telemetry
