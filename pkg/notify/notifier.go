package notify

import "context"

// Notifier is the capability interface implemented by every channel adapter.
// Implementations must be safe for concurrent use: the manager invokes the
// same instance from multiple dispatch goroutines.
type Notifier interface {
	// Send attempts delivery for every channel entry in the notification
	// matching this adapter's kind. Entries of other kinds are ignored, and
	// a notification with no matching entries is a no-op success. Send must
	// not mutate the notification and must not retry internally.
	Send(ctx context.Context, n Notification) error

	// HealthCheck is a lightweight self-test (e.g. credential format
	// validation). It must not perform the delivery side effect and must
	// complete quickly.
	HealthCheck(ctx context.Context) error

	// Name returns the stable adapter identifier used for registry lookup,
	// logging, and circuit-breaker keying.
	Name() string
}
