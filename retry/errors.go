package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// StatusError is a failure carrying a server status code, used to
// classify responses from the backend API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("retry: server status %d", e.Code)
	}
	return fmt.Sprintf("retry: server status %d: %s", e.Code, e.Message)
}

// TransientError marks a failure as transient regardless of its
// concrete type, for transports whose errors do not implement
// net.Error.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "retry: transient: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err so DefaultShouldRetry classifies it as retryable.
func Transient(err error) error {
	return &TransientError{Err: err}
}

// DefaultShouldRetry retries transient network failures and server
// responses with status >= 500. Client-side failures such as validation
// errors stop on first occurrence, as does context cancellation.
func DefaultShouldRetry(err error) bool {
	if err == nil {
		return false
	}

	// A cancelled caller must not be kept waiting through more attempts.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500
	}

	var transientErr *TransientError
	if errors.As(err, &transientErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
