package validate

import (
	"context"
	"time"
)

// AttemptFunc is one try of a retried operation.
type AttemptFunc func(ctx context.Context) error

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays between attempts: 1s, 2s,
// 4s, 8s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}
}

// Retry runs fn up to attempts times. Each attempt gets its own deadline
// when timeout is positive. Between attempts it waits delays[i], reusing
// the last delay once the list runs out; an empty list retries
// immediately. The last attempt's error is returned.
func Retry(ctx context.Context, name string, attempts int, timeout time.Duration, fn AttemptFunc, logger LogFunc, delays []time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = runAttempt(ctx, timeout, fn)
		if lastErr == nil {
			return nil
		}
		if attempt >= attempts-1 {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", name, attempt+2, lastErr)
		}

		if len(delays) == 0 {
			continue
		}
		d := delays[len(delays)-1]
		if attempt < len(delays) {
			d = delays[attempt]
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	return lastErr
}

func runAttempt(ctx context.Context, timeout time.Duration, fn AttemptFunc) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}
