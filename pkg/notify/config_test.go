package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argusops/alertkit/pkg/notify"
)

func TestLoadConfig(t *testing.T) {
	// No t.Parallel: t.Setenv must run before the one-time config parse,
	// and the loader caches the Config type for the process lifetime.
	t.Setenv("NOTIFY_PUSH_TOKEN", testPushToken)
	t.Setenv("NOTIFY_RETRY_MAX", "3")
	t.Setenv("NOTIFY_BREAKER_THRESHOLD", "7")

	cfg, err := notify.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, testPushToken, cfg.PushService.Token)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, 7, cfg.Breaker.FailureThreshold)

	// envDefault values fill everything not overridden.
	assert.Equal(t, time.Second, cfg.Retry.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.Retry.MaxDelay)
	assert.Equal(t, 30*time.Second, cfg.Breaker.Cooldown)
	assert.Equal(t, 60, cfg.BrowserPush.TTL)
}

func TestNewManagerFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("registers webhook and browser push by default", func(t *testing.T) {
		t.Parallel()

		m := notify.NewManagerFromConfig(notify.Config{})
		assert.Equal(t, []string{"browser_push", "webhook"}, m.Names())
	})

	t.Run("registers push service when token configured", func(t *testing.T) {
		t.Parallel()

		m := notify.NewManagerFromConfig(notify.Config{
			PushService: notify.PushServiceConfig{Token: testPushToken},
		})
		assert.Equal(t, []string{"browser_push", "push_service", "webhook"}, m.Names())
	})

	t.Run("registered notifiers are health-checkable", func(t *testing.T) {
		t.Parallel()

		m := notify.NewManagerFromConfig(notify.Config{
			PushService: notify.PushServiceConfig{Token: "not-a-valid-token"},
		})

		results := m.HealthCheckAll(context.Background())
		assert.NoError(t, results["webhook"])
		assert.NoError(t, results["browser_push"])
		assert.ErrorIs(t, results["push_service"], notify.ErrInvalidConfig)
	})
}
