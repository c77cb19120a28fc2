package notify_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argusops/alertkit/pkg/notify"
)

func TestServiceError_Permanent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status    int
		permanent bool
	}{
		{301, false},
		{399, false},
		{400, true},
		{404, true},
		{429, true},
		{499, true},
		{500, false},
		{503, false},
	}

	for _, tc := range cases {
		err := &notify.ServiceError{Notifier: "webhook", StatusCode: tc.status}
		assert.Equal(t, tc.permanent, err.Permanent(), "status %d", tc.status)
	}
}

func TestServiceError_Error(t *testing.T) {
	t.Parallel()

	withBody := &notify.ServiceError{Notifier: "push_service", StatusCode: 502, Body: "bad gateway"}
	assert.Contains(t, withBody.Error(), "push_service")
	assert.Contains(t, withBody.Error(), "502")
	assert.Contains(t, withBody.Error(), "bad gateway")

	withoutBody := &notify.ServiceError{Notifier: "webhook", StatusCode: 404}
	assert.Contains(t, withoutBody.Error(), "404")
}

func TestRetryExhaustedError_Unwrap(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("%w: connection refused", notify.ErrTransport)
	err := &notify.RetryExhaustedError{Notifier: "webhook", Attempts: 5, Err: underlying}

	assert.ErrorIs(t, err, notify.ErrTransport)

	var exhausted *notify.RetryExhaustedError
	require.ErrorAs(t, error(err), &exhausted)
	assert.Equal(t, 5, exhausted.Attempts)
	assert.Equal(t, "webhook", exhausted.Notifier)
}

func TestIsCircuitOpen(t *testing.T) {
	t.Parallel()

	assert.True(t, notify.IsCircuitOpen(fmt.Errorf("webhook: %w", notify.ErrCircuitOpen)))
	assert.False(t, notify.IsCircuitOpen(errors.New("other failure")))
	assert.False(t, notify.IsCircuitOpen(nil))
}
