package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// WebhookNotifierName is the registry and circuit-breaker key for the
// webhook adapter.
const WebhookNotifierName = "webhook"

// webhookPayload is the wire format delivered to webhook endpoints.
type webhookPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// WebhookNotifier delivers notifications as HTTP requests to the URLs named
// by WebhookChannel entries. Zero value is not usable; use NewWebhookNotifier.
type WebhookNotifier struct {
	// client is reused across requests for connection pooling
	client *http.Client
}

// NewWebhookNotifier creates a webhook adapter with a default pooled HTTP
// client. Timeout values balance responsiveness with allowing slow endpoints.
func NewWebhookNotifier() *WebhookNotifier {
	return &WebhookNotifier{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// NewWebhookNotifierWithClient creates a webhook adapter with a custom HTTP
// client. This allows for custom transports, proxies, or testing.
func NewWebhookNotifierWithClient(client *http.Client) *WebhookNotifier {
	if client == nil {
		return NewWebhookNotifier()
	}
	return &WebhookNotifier{client: client}
}

func (w *WebhookNotifier) Name() string { return WebhookNotifierName }

// Send posts the notification to every WebhookChannel entry. Entries of
// other channel kinds are ignored. Each entry is attempted regardless of
// sibling failures; failures are joined so the retry decorator re-attempts
// the whole notification.
func (w *WebhookNotifier) Send(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(webhookPayload{ID: n.ID, Title: n.Title, Body: n.Body})
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %w", ErrDeliveryFailed, err)
	}

	var errs []error
	for _, ch := range n.Channels {
		hook, ok := ch.(WebhookChannel)
		if !ok {
			continue
		}
		if err := w.deliver(ctx, hook, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *WebhookNotifier) deliver(ctx context.Context, ch WebhookChannel, payload []byte) error {
	if err := validateWebhookURL(ch.URL); err != nil {
		return err
	}

	method := ch.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, ch.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "alertkit-notify/1.0")
	for k, v := range ch.Headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServiceError{
			Notifier:   WebhookNotifierName,
			StatusCode: resp.StatusCode,
			Body:       readErrorBody(resp.Body),
		}
	}
	return nil
}

// HealthCheck verifies the adapter is constructed with a usable transport.
// There are no static credentials to validate; per-channel URLs are checked
// at send time.
func (w *WebhookNotifier) HealthCheck(ctx context.Context) error {
	if w.client == nil {
		return fmt.Errorf("%w: webhook notifier has no HTTP client", ErrInvalidConfig)
	}
	return nil
}

// validateWebhookURL fails fast on obvious configuration mistakes before any
// network I/O. Restricting to http/https also prevents SSRF via exotic schemes.
func validateWebhookURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: webhook URL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: webhook URL: %w", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https webhook URLs are supported", ErrInvalidConfig)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: webhook URL host is required", ErrInvalidConfig)
	}
	return nil
}

// readErrorBody captures a bounded, single-line slice of the response body
// for error context. The 64KB read limit prevents memory exhaustion and the
// newline replacement keeps log lines intact.
func readErrorBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 64*1024))
	if len(body) == 0 {
		return ""
	}
	s := strings.ReplaceAll(string(body), "\n", " ")
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
