package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT", "DB_SSLMODE", "DB_TIMEZONE"} {
			t.Setenv(key, "")
		}

		cfg := LoadConfigFromEnv()
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, "postgres", cfg.User)
		assert.Equal(t, "squadboard", cfg.DBName)
		assert.Equal(t, "5432", cfg.Port)
		assert.Equal(t, "disable", cfg.SSLMode)
		assert.Equal(t, "UTC", cfg.TimeZone)
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_NAME", "club")
		t.Setenv("DB_SSLMODE", "require")

		cfg := LoadConfigFromEnv()
		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, "club", cfg.DBName)
		assert.Equal(t, "require", cfg.SSLMode)
	})
}

func TestBuildDSN(t *testing.T) {
	cfg := Config{
		Host: "localhost", User: "u", Password: "p", DBName: "d",
		Port: "5432", SSLMode: "disable", TimeZone: "UTC",
	}
	assert.Equal(t,
		"host=localhost user=u password=p dbname=d port=5432 sslmode=disable TimeZone=UTC",
		BuildDSN(cfg))
}

func TestSanitizeError(t *testing.T) {
	cfg := Config{
		Host: "localhost", User: "u", Password: "s3cret", DBName: "d",
		Port: "5432", SSLMode: "disable", TimeZone: "UTC",
	}

	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, SanitizeError(nil, cfg))
	})

	t.Run("password removed", func(t *testing.T) {
		err := SanitizeError(errors.New("cannot connect with "+BuildDSN(cfg)+": password s3cret rejected"), cfg)
		assert.NotContains(t, err.Error(), "s3cret")
		assert.Contains(t, err.Error(), "password=***")
		assert.Contains(t, err.Error(), "failed to connect to database")
	})
}

func TestLoadRetryConfigFromEnv(t *testing.T) {
	t.Setenv("DB_RETRY_MAX_ATTEMPTS", "2")
	t.Setenv("DB_RETRY_INITIAL_DELAY", "250ms")
	t.Setenv("DB_RETRY_MAX_DELAY", "")
	t.Setenv("DB_RETRY_MULTIPLIER", "bogus")

	cfg := LoadRetryConfigFromEnv()
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.Equal(t, 2.0, cfg.Multiplier)
	assert.NotEmpty(t, cfg.RetryableErrors)
}

func TestLoadPoolConfigFromEnv(t *testing.T) {
	t.Setenv("DB_POOL_MAX_OPEN", "40")
	t.Setenv("DB_POOL_MAX_IDLE", "")
	t.Setenv("DB_POOL_MAX_LIFETIME", "1m")
	t.Setenv("DB_POOL_MAX_IDLE_TIME", "")

	cfg := LoadPoolConfigFromEnv()
	assert.Equal(t, 40, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 10*time.Minute, cfg.ConnMaxIdleTime)
}
