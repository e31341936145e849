// Package retry runs a unit of work with bounded retries, exponential
// backoff, and jitter.
//
// The executor performs no I/O of its own: the operation it receives is
// opaque, and classification of its failures decides whether another
// attempt is worth making. By default only transient network failures
// and server responses with status >= 500 are retried; everything else
// fails fast.
package retry
