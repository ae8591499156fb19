// Package retry implements bounded exponential backoff for HTTP calls.
package retry

import (
	"context"
	"errors"
	"math"
	"net"
	"time"
)

// Config controls retry behavior.
type Config struct {
	MaxAttempts int           // total attempts, including the first
	BaseWait    time.Duration // wait before the first retry
	MaxWait     time.Duration // backoff cap
}

// DefaultConfig suits most API calls: 4 attempts, 500ms..8s backoff.
var DefaultConfig = Config{
	MaxAttempts: 4,
	BaseWait:    500 * time.Millisecond,
	MaxWait:     8 * time.Second,
}

// Wait returns the backoff delay after the given zero-based attempt:
// min(base * 2^attempt, cap).
func (c Config) Wait(attempt int) time.Duration {
	wait := time.Duration(float64(c.BaseWait) * math.Pow(2, float64(attempt)))
	if wait > c.MaxWait {
		wait = c.MaxWait
	}
	return wait
}

// Do runs fn until it succeeds, returns a terminal error, or attempts run
// out. Only transient errors are retried; context cancellation stops the
// loop immediately.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !Transient(err) {
			return zero, err
		}

		if attempt < cfg.MaxAttempts-1 {
			select {
			case <-time.After(cfg.Wait(attempt)):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}
	return zero, lastErr
}

// Transienter lets error types opt in to retrying.
type Transienter interface {
	Transient() bool
}

// Transient reports whether err is worth retrying: an error that declares
// itself transient, a connection or DNS failure, or a network timeout.
func Transient(err error) bool {
	var tr Transienter
	if errors.As(err, &tr) {
		return tr.Transient()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// RetryableStatus reports whether an HTTP status code is worth retrying.
// 4xx responses other than 429 are terminal.
func RetryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}
