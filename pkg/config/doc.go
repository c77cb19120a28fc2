// Package config provides a type-safe, generic and cached way to load
// configuration structs from environment variables.
//
// Load parses `env`-tagged struct fields using caarlos0/env, after loading a
// local .env file once per process via godotenv. Each configuration type is
// parsed a single time and cached, so repeated loads of the same type are
// cheap and consistent across goroutines.
//
//	type BreakerConfig struct {
//		FailureThreshold int           `env:"NOTIFY_BREAKER_THRESHOLD" envDefault:"5"`
//		Cooldown         time.Duration `env:"NOTIFY_BREAKER_COOLDOWN" envDefault:"30s"`
//	}
//
//	var cfg BreakerConfig
//	config.MustLoad(&cfg)
package config
