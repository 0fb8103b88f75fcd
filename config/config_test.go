package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "MONGO_DB", "OPENAI_TIMEOUT", "COOKIE_SECURE", "BODY_LIMIT_MB"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "iiituna_feed", cfg.MongoDB)
	assert.Equal(t, 120*time.Second, cfg.OpenAITimeout)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 20, cfg.BodyLimitMB)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("OPENAI_TIMEOUT", "5s")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("BODY_LIMIT_MB", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.OpenAITimeout)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 20, cfg.BodyLimitMB)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(Config{LogLevel: "warn", LogFormat: "json"})
	assert.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
	assert.True(t, log.Core().Enabled(1))

	log, err = NewLogger(Config{LogLevel: "loud", LogFormat: "console"})
	assert.NoError(t, err)
	assert.True(t, log.Core().Enabled(0))
}
