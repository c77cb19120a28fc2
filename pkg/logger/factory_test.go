package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argusops/alertkit/pkg/logger"
)

type ctxKey string

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json format by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Info("delivery complete", slog.String("notifier", "webhook"))

		record := decodeRecord(t, &buf)
		assert.Equal(t, "delivery complete", record["msg"])
		assert.Equal(t, "webhook", record["notifier"])
	})

	t.Run("respects level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

		log.Info("suppressed")
		assert.Zero(t, buf.Len())

		log.Warn("emitted")
		assert.NotZero(t, buf.Len())
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("yaml")))
		})
	})

	t.Run("static attrs on every record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "alert-dispatch")),
		)
		log.Info("x")

		record := decodeRecord(t, &buf)
		assert.Equal(t, "alert-dispatch", record["service"])
	})

	t.Run("context value injection", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		key := ctxKey("request_id")
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("request_id", key),
		)

		ctx := context.WithValue(context.Background(), key, "req-42")
		log.InfoContext(ctx, "dispatched")

		record := decodeRecord(t, &buf)
		assert.Equal(t, "req-42", record["request_id"])
	})

	t.Run("missing context value adds nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("request_id", ctxKey("request_id")),
		)
		log.InfoContext(context.Background(), "dispatched")

		record := decodeRecord(t, &buf)
		assert.NotContains(t, record, "request_id")
	})

	t.Run("development preset", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithDevelopment("alertd"))
		log.Debug("debug is enabled")

		out := buf.String()
		assert.Contains(t, out, "service=alertd")
		assert.Contains(t, out, "env=development")
	})
}
