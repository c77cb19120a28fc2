package notify

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// BreakerState represents the current state of a circuit breaker.
type BreakerState int

const (
	// BreakerClosed allows calls to pass through.
	BreakerClosed BreakerState = iota
	// BreakerOpen rejects all calls without I/O.
	BreakerOpen
	// BreakerHalfOpen permits a single trial call.
	BreakerHalfOpen
)

// String returns the string representation of the breaker state.
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig controls when a breaker opens and how long it stays open.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failed dispatch
	// attempts (final, post-retry outcomes) that opens the breaker.
	FailureThreshold int `env:"NOTIFY_BREAKER_THRESHOLD" envDefault:"5"`
	// Cooldown is how long the breaker stays open before permitting a
	// half-open trial call.
	Cooldown time.Duration `env:"NOTIFY_BREAKER_COOLDOWN" envDefault:"30s"`
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 5
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 30 * time.Second
	}
	return c
}

// Breaker is a per-adapter failure-isolation state machine. Safe for
// concurrent use; at most one trial call runs while half-open.
type Breaker struct {
	mu sync.Mutex

	failureThreshold int
	cooldown         time.Duration

	state         BreakerState
	failures      int
	openedAt      time.Time
	trialInFlight bool
}

// NewBreaker creates a circuit breaker with the given configuration.
// Zero fields fall back to conservative defaults.
func NewBreaker(cfg BreakerConfig) *Breaker {
	cfg = cfg.withDefaults()
	return &Breaker{
		failureThreshold: cfg.FailureThreshold,
		cooldown:         cfg.Cooldown,
		state:            BreakerClosed,
	}
}

// allow reports whether a call may proceed, transitioning open to half-open
// once the cooldown has elapsed. While half-open, only the caller that wins
// the trial slot proceeds; everyone else is rejected.
func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		return true

	case BreakerOpen:
		if time.Since(b.openedAt) > b.cooldown {
			b.state = BreakerHalfOpen
			b.trialInFlight = true
			return true
		}
		return false

	case BreakerHalfOpen:
		if b.trialInFlight {
			return false
		}
		b.trialInFlight = true
		return true

	default:
		return false
	}
}

// recordSuccess resets the failure counter and closes the breaker after a
// successful half-open trial.
func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		b.state = BreakerClosed
		b.failures = 0
		b.trialInFlight = false
	}
}

// recordFailure counts a final failed outcome, opening the breaker at the
// threshold. A failed half-open trial reopens immediately and restarts the
// cooldown.
func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures++
		if b.failures >= b.failureThreshold {
			b.state = BreakerOpen
			b.openedAt = time.Now()
		}
	case BreakerHalfOpen:
		b.state = BreakerOpen
		b.openedAt = time.Now()
		b.failures = b.failureThreshold
		b.trialInFlight = false
	}
}

// recordCanceled releases a half-open trial slot without counting the
// outcome. A caller-driven cancellation is indeterminate, not a channel
// failure, and must not trip the breaker.
func (b *Breaker) recordCanceled() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerHalfOpen {
		b.trialInFlight = false
	}
}

// State returns the current state, accounting for the automatic open to
// half-open transition the next allowed call would observe.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && time.Since(b.openedAt) > b.cooldown {
		return BreakerHalfOpen
	}
	return b.state
}

// Reset returns the breaker to the closed state.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = BreakerClosed
	b.failures = 0
	b.trialInFlight = false
	b.openedAt = time.Time{}
}

// BreakerStats provides visibility into breaker state for monitoring.
type BreakerStats struct {
	State    string
	Failures int
	OpenedAt time.Time
}

// Stats returns the current statistics of the breaker.
func (b *Breaker) Stats() BreakerStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BreakerStats{
		State:    b.state.String(),
		Failures: b.failures,
		OpenedAt: b.openedAt,
	}
}

// breakerNotifier guards a Notifier with a circuit breaker. Composed outside
// the retry decorator, so an open breaker rejects before any retry delay or
// network I/O.
type breakerNotifier struct {
	next    Notifier
	breaker *Breaker
}

// WithBreaker decorates a notifier with circuit-breaker protection. Reuse
// one Breaker per adapter instance so failure state accumulates across
// dispatches. Health checks pass through without touching the failure
// counter.
func WithBreaker(next Notifier, b *Breaker) Notifier {
	if b == nil {
		b = NewBreaker(BreakerConfig{})
	}
	return &breakerNotifier{next: next, breaker: b}
}

func (c *breakerNotifier) Name() string { return c.next.Name() }

func (c *breakerNotifier) HealthCheck(ctx context.Context) error {
	return c.next.HealthCheck(ctx)
}

func (c *breakerNotifier) Send(ctx context.Context, n Notification) error {
	if !c.breaker.allow() {
		return fmt.Errorf("%s: %w", c.next.Name(), ErrCircuitOpen)
	}

	err := c.next.Send(ctx, n)
	switch {
	case err == nil:
		c.breaker.recordSuccess()
	case canceled(ctx, err):
		c.breaker.recordCanceled()
	default:
		c.breaker.recordFailure()
	}
	return err
}
