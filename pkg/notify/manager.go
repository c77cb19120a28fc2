package notify

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/argusops/alertkit/pkg/async"
	"github.com/argusops/alertkit/pkg/logger"
)

// Manager is the registry of named, decorated notifiers and the sole
// delivery entry point. Registration happens at startup; dispatch reads the
// registry concurrently thereafter.
type Manager struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
	logger    *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger for the Manager.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an empty notification manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		notifiers: make(map[string]Notifier),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds a notifier under name. Registration is idempotent per name;
// the last registration for a given name wins.
func (m *Manager) Register(name string, n Notifier) {
	if name == "" || n == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifiers[name] = n
}

// Names returns the registered adapter names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.notifiers))
	for name := range m.notifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DispatchResult reports the per-adapter outcome of one Send call. Adapters
// that succeeded delivered regardless of sibling failures.
type DispatchResult struct {
	Delivered []string
	Failed    map[string]error
}

// Ok reports whether every adapter delivered.
func (r DispatchResult) Ok() bool { return len(r.Failed) == 0 }

// DispatchError aggregates per-adapter failures from one dispatch. It never
// suppresses individual failures: every failing adapter is named.
type DispatchError struct {
	Failed map[string]error
}

func (e *DispatchError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for name := range e.Failed {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("dispatch failed for ")
	for i, name := range names {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(e.Failed[name].Error())
	}
	return sb.String()
}

// Unwrap exposes the underlying adapter errors to errors.Is/As.
func (e *DispatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, err := range e.Failed {
		errs = append(errs, err)
	}
	return errs
}

// Send fans the notification out to every registered notifier concurrently
// and waits for all of them to settle. A slow or failing adapter stalls only
// its own dispatch unit. The returned error is a *DispatchError naming every
// failing adapter, or nil when all succeeded.
func (m *Manager) Send(ctx context.Context, n Notification) (DispatchResult, error) {
	names, futures := m.fanOut(ctx, func(ctx context.Context, nt Notifier) error {
		return nt.Send(ctx, n)
	})

	result := DispatchResult{Failed: make(map[string]error)}
	_, errs := async.Settle(futures...)
	for i, err := range errs {
		if err != nil {
			result.Failed[names[i]] = err
			m.logger.LogAttrs(ctx, slog.LevelError, "notification delivery failed",
				logger.NotificationID(n.ID),
				logger.NotifierName(names[i]),
				logger.Error(err),
			)
			continue
		}
		result.Delivered = append(result.Delivered, names[i])
	}
	sort.Strings(result.Delivered)

	if len(result.Failed) > 0 {
		return result, &DispatchError{Failed: result.Failed}
	}
	return result, nil
}

// HealthCheckAll invokes every adapter's health check concurrently and
// returns the per-adapter outcome, nil for healthy adapters. Health checks
// bypass retry and breaker by construction: both decorators pass them
// through undecorated.
func (m *Manager) HealthCheckAll(ctx context.Context) map[string]error {
	names, futures := m.fanOut(ctx, func(ctx context.Context, nt Notifier) error {
		return nt.HealthCheck(ctx)
	})

	results := make(map[string]error, len(names))
	_, errs := async.Settle(futures...)
	for i, err := range errs {
		results[names[i]] = err
		if err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "notifier health check failed",
				logger.NotifierName(names[i]),
				logger.Error(err),
			)
		}
	}
	return results
}

// fanOut snapshots the registry and starts one dispatch unit per notifier.
// The snapshot keeps a concurrent Register from racing with in-flight
// dispatches.
func (m *Manager) fanOut(ctx context.Context, call func(context.Context, Notifier) error) ([]string, []*async.Future[struct{}]) {
	m.mu.RLock()
	targets := make(map[string]Notifier, len(m.notifiers))
	for name, nt := range m.notifiers {
		targets[name] = nt
	}
	m.mu.RUnlock()

	names := make([]string, 0, len(targets))
	futures := make([]*async.Future[struct{}], 0, len(targets))
	for name, nt := range targets {
		names = append(names, name)
		futures = append(futures, async.Async(ctx, nt, func(ctx context.Context, nt Notifier) (struct{}, error) {
			return struct{}{}, call(ctx, nt)
		}))
	}
	return names, futures
}
