package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// PushServiceNotifierName is the registry and circuit-breaker key for the
// hosted push-service adapter.
const PushServiceNotifierName = "push_service"

// defaultPushServiceURL is the provider's message endpoint.
const defaultPushServiceURL = "https://api.pushover.net/1/messages.json"

// pushServiceTokenLength is the provider's fixed application token length.
const pushServiceTokenLength = 30

// kindGlyphs map notification kinds to the title prefix shown on devices.
var kindGlyphs = map[Kind]string{
	KindInfo:    "ℹ️",
	KindSuccess: "✅",
	KindWarning: "⚠️",
	KindError:   "❌",
}

// pushServicePayload is the provider wire format.
type pushServicePayload struct {
	Token    string `json:"token"`
	User     string `json:"user"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Device   string `json:"device,omitempty"`
	Priority *int   `json:"priority,omitempty"`
	Sound    string `json:"sound,omitempty"`
}

// PushServiceConfig holds the application credential and endpoint for the
// hosted push provider.
type PushServiceConfig struct {
	Token string `env:"NOTIFY_PUSH_TOKEN"`
	URL   string `env:"NOTIFY_PUSH_URL" envDefault:"https://api.pushover.net/1/messages.json"`
}

// PushServiceNotifier delivers notifications through the hosted push
// provider to the recipients named by PushServiceChannel entries.
type PushServiceNotifier struct {
	token  string
	url    string
	client *http.Client
}

// NewPushServiceNotifier creates a push-service adapter. The token is the
// application credential embedded in every request; its format is validated
// by HealthCheck rather than here so a misconfigured adapter can still be
// registered and reported through health probes.
func NewPushServiceNotifier(cfg PushServiceConfig) *PushServiceNotifier {
	u := cfg.URL
	if u == "" {
		u = defaultPushServiceURL
	}
	return &PushServiceNotifier{
		token:  cfg.Token,
		url:    u,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewPushServiceNotifierWithClient creates a push-service adapter with a
// custom HTTP client for testing or custom transports.
func NewPushServiceNotifierWithClient(cfg PushServiceConfig, client *http.Client) *PushServiceNotifier {
	n := NewPushServiceNotifier(cfg)
	if client != nil {
		n.client = client
	}
	return n
}

func (p *PushServiceNotifier) Name() string { return PushServiceNotifierName }

// Send posts one provider message per PushServiceChannel entry. The title is
// prefixed with a kind-derived glyph before transmission. Every entry is
// attempted; failures are joined into a single error.
func (p *PushServiceNotifier) Send(ctx context.Context, n Notification) error {
	title := n.Title
	if glyph, ok := kindGlyphs[n.Kind]; ok {
		title = glyph + " " + title
	}

	var errs []error
	for _, ch := range n.Channels {
		push, ok := ch.(PushServiceChannel)
		if !ok {
			continue
		}
		payload := pushServicePayload{
			Token:    p.token,
			User:     push.RecipientKey,
			Title:    title,
			Message:  n.Body,
			Device:   push.Device,
			Priority: push.Priority,
			Sound:    push.Sound,
		}
		if err := p.deliver(ctx, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *PushServiceNotifier) deliver(ctx context.Context, payload pushServicePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %w", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServiceError{
			Notifier:   PushServiceNotifierName,
			StatusCode: resp.StatusCode,
			Body:       readErrorBody(resp.Body),
		}
	}
	return nil
}

// HealthCheck validates the application token format without contacting the
// provider. The provider issues fixed-length alphanumeric tokens.
func (p *PushServiceNotifier) HealthCheck(ctx context.Context) error {
	if p.token == "" {
		return fmt.Errorf("%w: push service token is required", ErrInvalidConfig)
	}
	if len(p.token) != pushServiceTokenLength {
		return fmt.Errorf("%w: push service token must be %d characters", ErrInvalidConfig, pushServiceTokenLength)
	}
	for _, r := range p.token {
		if !isAlphanumeric(r) {
			return fmt.Errorf("%w: push service token must be alphanumeric", ErrInvalidConfig)
		}
	}
	return nil
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
