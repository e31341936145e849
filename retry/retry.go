package retry

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Operation is a single attempt at a unit of work.
type Operation func(ctx context.Context) (any, error)

// Policy configures the retry behavior.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt, so
	// Execute makes at most MaxRetries+1 attempts.
	// Default: 3
	MaxRetries int

	// BaseDelay is the delay before the first retry.
	// Default: 1s
	BaseDelay time.Duration

	// Multiplier is the exponential backoff multiplier.
	// Default: 2.0
	Multiplier float64

	// MaxJitter bounds the uniform random jitter added to each delay to
	// desynchronize concurrent retriers. Negative disables jitter.
	// Default: 1s
	MaxJitter time.Duration

	// ShouldRetry classifies a failure as retryable.
	// Default: DefaultShouldRetry
	ShouldRetry func(err error) bool

	// OnRetry is called before each retry with the failure being retried
	// and the chosen delay. Failures from non-final attempts are
	// observable only here; Execute returns the final attempt's error.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Executor runs operations under a retry policy. Each Execute call is
// independent; the executor keeps no state between calls.
type Executor struct {
	policy Policy
}

// New creates an executor, applying policy defaults for zero values.
func New(policy Policy) *Executor {
	if policy.MaxRetries <= 0 {
		policy.MaxRetries = 3
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = time.Second
	}
	if policy.Multiplier <= 0 {
		policy.Multiplier = 2.0
	}
	if policy.MaxJitter == 0 {
		policy.MaxJitter = time.Second
	}
	if policy.ShouldRetry == nil {
		policy.ShouldRetry = DefaultShouldRetry
	}

	return &Executor{policy: policy}
}

// Policy returns the executor's policy after defaults were applied.
func (e *Executor) Policy() Policy {
	return e.policy
}

// Execute runs op until it succeeds, its failure is classified as not
// retryable, or MaxRetries retries are exhausted. The error returned is
// always the final attempt's; earlier failures are dropped after the
// OnRetry hook has seen them.
//
// Between attempts Execute suspends for
// BaseDelay * Multiplier^attempt + jitter, or returns early with
// ctx.Err() if the context is done first.
func (e *Executor) Execute(ctx context.Context, op Operation) (any, error) {
	for attempt := 0; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}

		if attempt == e.policy.MaxRetries || !e.policy.ShouldRetry(err) {
			return nil, err
		}

		delay := e.delay(attempt)
		if e.policy.OnRetry != nil {
			e.policy.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (e *Executor) delay(attempt int) time.Duration {
	backoff := time.Duration(float64(e.policy.BaseDelay) * math.Pow(e.policy.Multiplier, float64(attempt)))
	if backoff < 0 {
		// Overflowed; the base delay is the least surprising fallback.
		backoff = e.policy.BaseDelay
	}

	if e.policy.MaxJitter > 0 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		backoff += time.Duration(rand.Int64N(int64(e.policy.MaxJitter)))
	}

	return backoff
}
