// Package notify provides reliable multi-channel notification delivery with
// per-adapter retry, circuit breaking, and concurrent fan-out dispatch.
//
// A Notification describes what to send (kind, title, body) and where
// (a sequence of Channel entries). Channel adapters — webhook, hosted push
// service, browser push — each implement the Notifier interface, translate
// matching channel entries into transport calls, and ignore entries of other
// kinds. Cross-cutting behavior composes as decorators around any Notifier:
// WithRetry adds exponential-backoff re-attempts with per-error retryability
// classification, and WithBreaker adds a circuit breaker so a channel known
// to be down stops consuming retry budget and dispatch latency.
//
// The Manager holds the registry of decorated notifiers and fans each Send
// out concurrently to all of them, waiting for every dispatch unit to settle
// so a slow or hung adapter never blocks its siblings. Failures are never
// suppressed: the aggregate DispatchError names every failing adapter while
// successful adapters still count as delivered.
//
// # Basic Usage
//
//	cfg, err := notify.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	manager := notify.NewManagerFromConfig(cfg)
//
//	n := notify.New(notify.KindWarning, "Motion detected", "Camera 3, back entrance",
//	    notify.WebhookChannel{URL: "https://ops.example.com/hooks/alerts"},
//	    notify.PushServiceChannel{RecipientKey: "u123", Sound: "siren"},
//	)
//
//	result, err := manager.Send(ctx, n)
//	if err != nil {
//	    var dispatchErr *notify.DispatchError
//	    if errors.As(err, &dispatchErr) {
//	        // result.Delivered lists the adapters that still succeeded
//	    }
//	}
//
// # Composition
//
// Decorators implement Notifier themselves and compose by construction:
//
//	adapter := notify.NewWebhookNotifier()
//	wrapped := notify.WithBreaker(
//	    notify.WithRetry(adapter, notify.RetryConfig{MaxRetries: 3}),
//	    notify.NewBreaker(notify.BreakerConfig{FailureThreshold: 5}),
//	)
//	manager.Register(wrapped.Name(), wrapped)
//
// The breaker wraps the retry decorator, not the other way around: an open
// breaker rejects before any retry delay or network I/O, and the breaker
// counts only final post-retry outcomes, not individual retry iterations.
//
// # Error Classification
//
// Adapters surface the most specific error kind they can determine:
// ErrTransport for network failures, *ServiceError for non-2xx responses,
// ErrInvalidConfig for malformed credentials. The retry decorator retries
// transport errors and 5xx-class service errors; 4xx-class service errors
// and circuit-open rejections surface immediately. Unclassified errors
// default to retryable so new adapters stay available until their error
// kinds are classified. When the budget is spent the caller receives a
// *RetryExhaustedError carrying the adapter name, attempt count, and last
// underlying error.
//
// # Health Checks
//
// Manager.HealthCheckAll runs every adapter's HealthCheck concurrently.
// Health checks are fast, side-effect-free self-tests (credential format
// validation); both decorators pass them through so a failing health check
// never consumes retries or trips a breaker.
package notify
