// Package ratelimit provides per-key sliding-window admission control.
//
// The window slides with "now" rather than aligning to fixed buckets, so
// a burst at a bucket boundary cannot double the effective limit. The
// cost is one stored timestamp per in-window request, which is fine for
// the small windows and limits of client-side protection.
package ratelimit
