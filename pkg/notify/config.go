package notify

import (
	"github.com/argusops/alertkit/pkg/config"
)

// Config aggregates the environment-driven settings for the delivery
// subsystem: adapter credentials plus the retry and breaker parameters
// shared by every registered adapter.
type Config struct {
	PushService PushServiceConfig
	BrowserPush BrowserPushConfig
	Retry       RetryConfig
	Breaker     BreakerConfig
}

// LoadConfig loads the subsystem configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewManagerFromConfig is the composition root: it builds each adapter,
// wraps it as breaker(retry(adapter)) with a dedicated breaker instance, and
// registers it under its stable name. The push-service adapter is only
// registered when an application token is configured, since every request
// embeds it.
func NewManagerFromConfig(cfg Config, opts ...ManagerOption) *Manager {
	m := NewManager(opts...)

	register := func(n Notifier) {
		m.Register(n.Name(), WithBreaker(WithRetry(n, cfg.Retry), NewBreaker(cfg.Breaker)))
	}

	register(NewWebhookNotifier())
	register(NewBrowserPushNotifier(cfg.BrowserPush))
	if cfg.PushService.Token != "" {
		register(NewPushServiceNotifier(cfg.PushService))
	}

	return m
}
