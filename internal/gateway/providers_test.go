package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"solana-token-scope/internal/config"
)

func TestNewProviders(t *testing.T) {
	cfg := &config.Config{
		HTTPTimeout:        3 * time.Second,
		ProviderRPS:        2,
		PumpFunBaseURL:     "http://pump/",
		DebotBaseURL:       "http://debot",
		ChainFMBaseURL:     "http://chainfm",
		ChainFMCookie:      "sid=1",
		PumpNewsBaseURL:    "http://news",
		HistoryLimit:       7,
		SmartMoneyPageSize: 40,
	}

	p := NewProviders(cfg, nil)

	assert.Equal(t, "http://pump", p.PumpFun.http.baseURL)
	assert.Equal(t, 7, p.PumpFun.HistoryLimit())
	assert.Equal(t, 3*time.Second, p.Debot.http.client.Timeout)
	assert.NotNil(t, p.Debot.http.limiter)
	assert.NotSame(t, p.Debot.http.limiter, p.PumpNews.http.limiter)
	assert.Equal(t, "sid=1", p.ChainFM.http.headers.Get("Cookie"))
	assert.Equal(t, 40, p.ChainFM.pageSize)
}
