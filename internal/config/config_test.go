package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("AccessTokenTTL converts minutes to duration", func(t *testing.T) {
		cfg := &Config{AccessTokenTTLMinutes: 30}
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL())
	})

	t.Run("RefreshTokenTTL converts days to duration", func(t *testing.T) {
		cfg := &Config{RefreshTokenTTLDays: 14}
		assert.Equal(t, 14*24*time.Hour, cfg.RefreshTokenTTL())
	})

	t.Run("InviteTTL converts seconds to duration", func(t *testing.T) {
		cfg := &Config{InviteTTLSeconds: 300}
		assert.Equal(t, 5*time.Minute, cfg.InviteTTL())
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects short access token secret in production", func(t *testing.T) {
		cfg := &Config{AccessTokenSecret: "short", InviteTTLSeconds: 300}
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("rejects known weak secrets in production", func(t *testing.T) {
		cfg := &Config{AccessTokenSecret: "change-me", InviteTTLSeconds: 300}
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("accepts weak secret outside production", func(t *testing.T) {
		cfg := &Config{AccessTokenSecret: "change-me", InviteTTLSeconds: 300}
		assert.NoError(t, cfg.Validate(false))
	})

	t.Run("rejects non-positive invite TTL", func(t *testing.T) {
		cfg := &Config{InviteTTLSeconds: 0}
		assert.Error(t, cfg.Validate(false))
	})
}

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PORT":                "",
		"DATABASE_URL":        "",
		"REDIS_URL":           "",
		"ACCESS_TOKEN_SECRET": "",
		"INVITE_TTL_SECONDS":  "",
		"LOG_LEVEL":           "",
	}
	for k := range originalEnv {
		originalEnv[k] = os.Getenv(k)
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
		os.Unsetenv("PORT")
		os.Unsetenv("INVITE_TTL_SECONDS")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
		assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
		assert.Equal(t, 30, cfg.AccessTokenTTLMinutes)
		assert.Equal(t, 14, cfg.RefreshTokenTTLDays)
		assert.Equal(t, 300, cfg.InviteTTLSeconds)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("loads custom values", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
		os.Setenv("PORT", "3000")
		os.Setenv("INVITE_TTL_SECONDS", "60")
		os.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, 60, cfg.InviteTTLSeconds)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("fails without required DATABASE_URL", func(t *testing.T) {
		os.Unsetenv("DATABASE_URL")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("ACCESS_TOKEN_SECRET", "test-secret")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("fails without required REDIS_URL", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Unsetenv("REDIS_URL")

		_, err := Load()
		assert.Error(t, err)
	})
}
