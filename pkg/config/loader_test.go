package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argusops/alertkit/pkg/config"
)

// Each subtest uses its own struct type: the loader caches per type for the
// process lifetime, so sharing a type across subtests would leak state.

func TestLoad(t *testing.T) {
	t.Run("parses env tags with defaults", func(t *testing.T) {
		type basicConfig struct {
			Host string `env:"TEST_LOADER_HOST" envDefault:"localhost"`
			Port int    `env:"TEST_LOADER_PORT" envDefault:"8080"`
		}

		t.Setenv("TEST_LOADER_HOST", "alerts.internal")

		var cfg basicConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "alerts.internal", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("caches per type", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_LOADER_CACHED" envDefault:"unset"`
		}

		t.Setenv("TEST_LOADER_CACHED", "first")

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		require.Equal(t, "first", first.Value)

		// A changed environment is invisible after the first load.
		t.Setenv("TEST_LOADER_CACHED", "second")

		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		err := config.Load[struct{}](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("wraps parse failures", func(t *testing.T) {
		type brokenConfig struct {
			Count int `env:"TEST_LOADER_BROKEN"`
		}

		t.Setenv("TEST_LOADER_BROKEN", "not-a-number")

		var cfg brokenConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("required variable missing", func(t *testing.T) {
		type requiredConfig struct {
			Token string `env:"TEST_LOADER_REQUIRED_MISSING,required"`
		}

		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("returns value on success", func(t *testing.T) {
		type mustConfig struct {
			Name string `env:"TEST_LOADER_MUST" envDefault:"fallback"`
		}

		var cfg mustConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "fallback", cfg.Name)
	})

	t.Run("panics on failure", func(t *testing.T) {
		type mustBrokenConfig struct {
			Count int `env:"TEST_LOADER_MUST_BROKEN"`
		}

		t.Setenv("TEST_LOADER_MUST_BROKEN", "nope")

		var cfg mustBrokenConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}
