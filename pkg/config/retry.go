package config

import (
	"context"
	"errors"
	"time"
)

// Connection attempts made by the network backends before giving up.
const (
	connectAttempts = 3
	connectDelay    = 250 * time.Millisecond
)

// transientError marks a failure worth another attempt.
type transientError struct{ Err error }

func (e *transientError) Error() string { return e.Err.Error() }
func (e *transientError) Unwrap() error { return e.Err }

// transient wraps err so retry attempts the call again. Nil stays nil.
func transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{Err: err}
}

// retry calls fn up to attempts times, doubling delay after each transient
// failure. Other errors return immediately, as does a done ctx.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		lastErr = fn()
		if lastErr == nil || !errors.As(lastErr, new(*transientError)) {
			return unwrapTransient(lastErr)
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return unwrapTransient(lastErr)
}

func unwrapTransient(err error) error {
	var t *transientError
	if errors.As(err, &t) {
		return t.Err
	}
	return err
}
