// Package dedup coalesces concurrent requests that share a logical key
// into a single in-flight operation.
//
// While an operation for a key is outstanding, every further call for
// that key joins it and receives the identical result or error. The key
// is forgotten as soon as the operation settles, so a failure never
// poisons later attempts.
package dedup
