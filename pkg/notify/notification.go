package notify

import (
	"github.com/google/uuid"
)

// Kind represents the notification type/severity.
// It is advisory only: adapters may use it for presentation (e.g. title
// glyphs), but it never affects delivery behavior.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Channel is a closed union of delivery targets. Exactly one adapter kind
// acts on each variant; adapters ignore variants they do not recognize.
type Channel interface {
	isChannel()
}

// WebhookChannel delivers the notification as an HTTP request to URL.
type WebhookChannel struct {
	URL     string
	Headers map[string]string // merged into the request, optional
	Method  string            // HTTP verb, defaults to POST
}

func (WebhookChannel) isChannel() {}

// PushServiceChannel delivers the notification through the hosted push
// provider to the account identified by RecipientKey.
type PushServiceChannel struct {
	RecipientKey string
	Device       string // optional, empty targets all devices
	Priority     *int   // optional, provider priority scale
	Sound        string // optional
}

func (PushServiceChannel) isChannel() {}

// BrowserPushChannel delivers the notification to a browser push
// subscription.
type BrowserPushChannel struct {
	Endpoint         string
	ClientPublicKey  string
	ClientAuthSecret string
}

func (BrowserPushChannel) isChannel() {}

// Notification is the immutable value describing what to send and where.
// Channel entries may repeat; each entry is dispatched independently.
type Notification struct {
	ID       string
	Kind     Kind
	Title    string
	Body     string
	Channels []Channel
}

// New creates a notification with a generated ID. The ID is used for
// correlation in logs and dispatch results.
func New(kind Kind, title, body string, channels ...Channel) Notification {
	return Notification{
		ID:       uuid.New().String(),
		Kind:     kind,
		Title:    title,
		Body:     body,
		Channels: channels,
	}
}
