package notify

import (
	"context"
	"errors"
	"fmt"
)

// Domain errors for notification delivery, designed for error wrapping and
// classification with errors.Is/As.
var (
	// ErrDeliveryFailed is the stable identity wrapped by adapter failures.
	ErrDeliveryFailed = errors.New("notification delivery failed")

	// ErrTransport marks network-level failures (timeout, connection
	// refused) before any response was received. Always retryable.
	ErrTransport = errors.New("transport failure")

	// ErrCircuitOpen is returned when the circuit breaker rejects a call
	// without attempting I/O. Never retried.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrInvalidConfig marks malformed adapter credentials detected at
	// health-check or construction time.
	ErrInvalidConfig = errors.New("invalid notifier configuration")
)

// ServiceError is a non-success response from a remote channel.
type ServiceError struct {
	Notifier   string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: service returned status %d", e.Notifier, e.StatusCode)
	}
	return fmt.Sprintf("%s: service returned status %d: %s", e.Notifier, e.StatusCode, e.Body)
}

// Permanent reports whether the response indicates a client-side failure
// that will not resolve with retries. Only the 4xx class is permanent;
// 5xx and anything unusual retries.
func (e *ServiceError) Permanent() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// RetryExhaustedError is the terminal error after the retry budget is spent.
// Attempts counts retry attempts, so the adapter was called Attempts+1 times.
type RetryExhaustedError struct {
	Notifier string
	Attempts int
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%s: retries exhausted after %d attempts: %v", e.Notifier, e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Err }

// IsCircuitOpen checks if an error indicates the circuit breaker is open.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}

// retryable classifies whether an error is worth retrying. A circuit-open
// signal fails fast, client-side service errors are final, and everything
// else defaults to retryable so that unclassified error kinds favor
// availability until explicitly classified otherwise.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrCircuitOpen) {
		return false
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return !svcErr.Permanent()
	}
	return true
}

// canceled reports whether err is a context cancellation confirmed by the
// caller's context. Used to keep indeterminate outcomes out of the breaker's
// failure counter.
func canceled(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return ctx.Err() != nil
}
