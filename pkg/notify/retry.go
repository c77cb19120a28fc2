package notify

import (
	"context"
	"math"
	"time"
)

// RetryConfig controls the retry decorator's backoff schedule.
type RetryConfig struct {
	MaxRetries   int           `env:"NOTIFY_RETRY_MAX" envDefault:"5"`
	InitialDelay time.Duration `env:"NOTIFY_RETRY_INITIAL_DELAY" envDefault:"1s"`
	MaxDelay     time.Duration `env:"NOTIFY_RETRY_MAX_DELAY" envDefault:"30s"`
	Multiplier   float64       `env:"NOTIFY_RETRY_MULTIPLIER" envDefault:"2.0"`
}

// withDefaults fills zero fields with production defaults.
func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 5
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = time.Second
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2.0
	}
	return c
}

// Delay returns the backoff before the attempt-th retry (0-indexed):
// min(InitialDelay * Multiplier^attempt, MaxDelay). No jitter is applied;
// callers that need thundering-herd avoidance should add it at the
// configuration layer.
func (c RetryConfig) Delay(attempt int) time.Duration {
	c = c.withDefaults()
	if attempt < 0 {
		return 0
	}
	d := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	if d > float64(c.MaxDelay) {
		return c.MaxDelay
	}
	return time.Duration(d)
}

// retryNotifier wraps a Notifier with bounded, backed-off re-attempts.
type retryNotifier struct {
	next Notifier
	cfg  RetryConfig
}

// WithRetry decorates a notifier with exponential-backoff retry. Failures
// are re-attempted up to cfg.MaxRetries times when classified retryable;
// non-retryable failures surface immediately. Health checks pass through
// undecorated so they stay fast and side-effect free.
func WithRetry(next Notifier, cfg RetryConfig) Notifier {
	return &retryNotifier{next: next, cfg: cfg.withDefaults()}
}

func (r *retryNotifier) Name() string { return r.next.Name() }

func (r *retryNotifier) HealthCheck(ctx context.Context) error {
	return r.next.HealthCheck(ctx)
}

func (r *retryNotifier) Send(ctx context.Context, n Notification) error {
	err := r.next.Send(ctx, n)
	if err == nil || !retryable(err) {
		return err
	}

	for attempt := 0; attempt < r.cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.cfg.Delay(attempt)):
		}

		err = r.next.Send(ctx, n)
		if err == nil || !retryable(err) {
			return err
		}
	}

	return &RetryExhaustedError{
		Notifier: r.next.Name(),
		Attempts: r.cfg.MaxRetries,
		Err:      err,
	}
}
