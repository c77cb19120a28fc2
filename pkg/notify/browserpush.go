package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// BrowserPushNotifierName is the registry and circuit-breaker key for the
// browser push adapter.
const BrowserPushNotifierName = "browser_push"

// browserPushPayload is the message body posted to the subscription endpoint.
type browserPushPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// BrowserPushConfig holds delivery settings for browser push subscriptions.
type BrowserPushConfig struct {
	// TTL is how long, in seconds, the push service should retain an
	// undelivered message.
	TTL int `env:"NOTIFY_BROWSER_PUSH_TTL" envDefault:"60"`
}

// BrowserPushNotifier delivers notifications to the browser push
// subscriptions named by BrowserPushChannel entries.
type BrowserPushNotifier struct {
	ttl    int
	client *http.Client
}

// NewBrowserPushNotifier creates a browser push adapter.
func NewBrowserPushNotifier(cfg BrowserPushConfig) *BrowserPushNotifier {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 60
	}
	return &BrowserPushNotifier{
		ttl:    ttl,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewBrowserPushNotifierWithClient creates a browser push adapter with a
// custom HTTP client for testing or custom transports.
func NewBrowserPushNotifierWithClient(cfg BrowserPushConfig, client *http.Client) *BrowserPushNotifier {
	n := NewBrowserPushNotifier(cfg)
	if client != nil {
		n.client = client
	}
	return n
}

func (b *BrowserPushNotifier) Name() string { return BrowserPushNotifierName }

// Send posts the notification to every BrowserPushChannel subscription
// endpoint. Subscription keys are validated before any I/O so broken
// registrations surface as configuration errors rather than provider 4xx.
// A broken or failing subscription does not stop delivery to the others;
// failures are joined into a single error.
func (b *BrowserPushNotifier) Send(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(browserPushPayload{ID: n.ID, Title: n.Title, Body: n.Body})
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %w", ErrDeliveryFailed, err)
	}

	var errs []error
	for _, ch := range n.Channels {
		sub, ok := ch.(BrowserPushChannel)
		if !ok {
			continue
		}
		if err := validateSubscriptionKeys(sub); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := b.deliver(ctx, sub, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *BrowserPushNotifier) deliver(ctx context.Context, sub BrowserPushChannel, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("TTL", strconv.Itoa(b.ttl))
	req.Header.Set("X-Client-Public-Key", sub.ClientPublicKey)
	req.Header.Set("X-Client-Auth", sub.ClientAuthSecret)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServiceError{
			Notifier:   BrowserPushNotifierName,
			StatusCode: resp.StatusCode,
			Body:       readErrorBody(resp.Body),
		}
	}
	return nil
}

// HealthCheck verifies the adapter is constructed with a usable transport.
// Subscription keys live on channel entries, so key validation happens per
// send rather than here.
func (b *BrowserPushNotifier) HealthCheck(ctx context.Context) error {
	if b.client == nil {
		return fmt.Errorf("%w: browser push notifier has no HTTP client", ErrInvalidConfig)
	}
	return nil
}

// validateSubscriptionKeys checks the base64url-encoded subscription keys: a
// 65-byte uncompressed P-256 point for the client public key and a 16-byte
// auth secret.
func validateSubscriptionKeys(sub BrowserPushChannel) error {
	if sub.Endpoint == "" {
		return fmt.Errorf("%w: browser push endpoint is required", ErrInvalidConfig)
	}
	pub, err := base64.RawURLEncoding.DecodeString(sub.ClientPublicKey)
	if err != nil {
		return fmt.Errorf("%w: client public key is not base64url: %w", ErrInvalidConfig, err)
	}
	if len(pub) != 65 {
		return fmt.Errorf("%w: client public key must decode to 65 bytes, got %d", ErrInvalidConfig, len(pub))
	}
	secret, err := base64.RawURLEncoding.DecodeString(sub.ClientAuthSecret)
	if err != nil {
		return fmt.Errorf("%w: client auth secret is not base64url: %w", ErrInvalidConfig, err)
	}
	if len(secret) != 16 {
		return fmt.Errorf("%w: client auth secret must decode to 16 bytes, got %d", ErrInvalidConfig, len(secret))
	}
	return nil
}
