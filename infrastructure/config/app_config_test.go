package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAppConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "API_BASE_URL", "API_KEY", "API_TIMEOUT", "SESSION_TTL", "SCREEN_IDLE_TTL", "DB_PATH"} {
		t.Setenv(key, "")
	}

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "./flightadmin.db", cfg.Database.Path)
	assert.Equal(t, 60*time.Second, cfg.API.Timeout)
	assert.Equal(t, "x-api-key", cfg.API.APIKeyHeader)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.ScreenIdleTTL)
	assert.Error(t, cfg.Validate())
}

func TestLoadAppConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/api/v1")
	t.Setenv("API_KEY", "k1")
	t.Setenv("ADMIN_API_KEY", "k2")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("SESSION_SECURE_COOKIE", "yes")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := LoadAppConfigFromEnv()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "k2", cfg.API.AdminAPIKey)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Session.SecureCookie)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"on", false, true},
		{" TRUE ", false, true},
		{"n", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseBool(tt.in, tt.def), tt.in)
	}
}
