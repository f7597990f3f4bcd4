package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		GoEnv:          "development",
		HTTPPort:       8080,
		DatabaseURL:    "postgres://localhost:5432/librarium",
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		RateLimitRPS:   20,
		RateLimitBurst: 40,
		LogLevel:       "debug",
		LogFormat:      "text",
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("MissingDatabaseURL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/librarium")
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.HTTPPort)
		assert.Equal(t, "24h0m0s", cfg.SessionTTL.String())
		assert.Equal(t, 20, cfg.RateLimitRPS)
		assert.True(t, cfg.IsDevelopment())
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/librarium")
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("SESSION_TTL", "one-day")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "SESSION_TTL")
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("ShortJWTSecret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = "short"
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("BadPort", func(t *testing.T) {
		cfg := validConfig()
		cfg.HTTPPort = 0
		assert.ErrorContains(t, cfg.Validate(), "HTTP_PORT")
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		cfg := validConfig()
		cfg.LogLevel = "verbose"
		assert.ErrorContains(t, cfg.Validate(), "LOG_LEVEL")
	})

	t.Run("BurstBelowRPS", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimitBurst = 5
		assert.ErrorContains(t, cfg.Validate(), "RATE_LIMIT_BURST")
	})
}
