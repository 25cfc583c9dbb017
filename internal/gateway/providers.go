package gateway

import (
	"github.com/sirupsen/logrus"

	"solana-token-scope/internal/config"
)

// Providers bundles one client per external provider.
type Providers struct {
	PumpFun  *PumpFun
	Debot    *Debot
	ChainFM  *ChainFM
	PumpNews *PumpNews
}

// NewProviders builds every provider client from cfg. Each client gets its
// own rate limiter.
func NewProviders(cfg *config.Config, log logrus.FieldLogger) *Providers {
	opts := func() []ClientOption {
		return []ClientOption{
			WithTimeout(cfg.HTTPTimeout),
			WithRateLimit(cfg.ProviderRPS),
			WithLogger(log),
		}
	}
	return &Providers{
		PumpFun:  NewPumpFun(cfg.PumpFunBaseURL, cfg.HistoryLimit, opts()...),
		Debot:    NewDebot(cfg.DebotBaseURL, opts()...),
		ChainFM:  NewChainFM(cfg.ChainFMBaseURL, cfg.ChainFMCookie, cfg.SmartMoneyPageSize, opts()...),
		PumpNews: NewPumpNews(cfg.PumpNewsBaseURL, opts()...),
	}
}
