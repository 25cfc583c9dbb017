package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"TOKENSCOPE_LISTEN_ADDR", "TOKENSCOPE_HTTP_TIMEOUT", "TOKENSCOPE_PROVIDER_RPS",
		"PUMPFUN_BASE_URL", "CHAINFM_COOKIE", "TOKENSCOPE_HISTORY_LIMIT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5.0, cfg.ProviderRPS)
	assert.Equal(t, DefaultPumpFunBaseURL, cfg.PumpFunBaseURL)
	assert.Empty(t, cfg.ChainFMCookie)
	assert.Equal(t, 10, cfg.HistoryLimit)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOKENSCOPE_LISTEN_ADDR", ":9999")
	t.Setenv("TOKENSCOPE_HTTP_TIMEOUT", "3s")
	t.Setenv("TOKENSCOPE_PROVIDER_RPS", "0")
	t.Setenv("CHAINFM_COOKIE", "session=abc")
	t.Setenv("TOKENSCOPE_SMART_MONEY_PAGE_SIZE", "50")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0.0, cfg.ProviderRPS)
	assert.Equal(t, "session=abc", cfg.ChainFMCookie)
	assert.Equal(t, 50, cfg.SmartMoneyPageSize)
}

func TestLoad_MalformedFallsBackToDefault(t *testing.T) {
	t.Setenv("TOKENSCOPE_HTTP_TIMEOUT", "soon")
	t.Setenv("TOKENSCOPE_HISTORY_LIMIT", "ten")

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10, cfg.HistoryLimit)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPTimeout:        time.Second,
			PumpFunBaseURL:     "http://a",
			DebotBaseURL:       "http://b",
			ChainFMBaseURL:     "http://c",
			PumpNewsBaseURL:    "http://d",
			HistoryLimit:       10,
			SmartMoneyPageSize: 30,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty url", func(c *Config) { c.DebotBaseURL = "" }},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }},
		{"negative rps", func(c *Config) { c.ProviderRPS = -1 }},
		{"zero history limit", func(c *Config) { c.HistoryLimit = 0 }},
		{"zero page size", func(c *Config) { c.SmartMoneyPageSize = 0 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
