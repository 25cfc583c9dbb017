// Package gateway implements one client per external data provider.
//
// Each fetch is a single outbound GET returning a typed domain record or a
// *FetchError. Nothing is retried or cached.
package gateway

import (
	"context"

	"solana-token-scope/internal/domain"
)

// Provider names used in errors, logs and metrics.
const (
	ProviderPumpFun  = "pumpfun"
	ProviderDebot    = "debot"
	ProviderChainFM  = "chainfm"
	ProviderPumpNews = "pumpnews"
)

// TokenRegistry looks up a token by contract address.
type TokenRegistry interface {
	LookupToken(ctx context.Context, mint string) (*domain.TokenProfile, error)
}

// CreatorTradeSource fetches the creator's trades on a token.
type CreatorTradeSource interface {
	FetchCreatorTrades(ctx context.Context, mint string) (*domain.CreatorTradeInfo, error)
}

// CreatorHistorySource fetches the coins a creator has launched.
type CreatorHistorySource interface {
	FetchCreatorHistory(ctx context.Context, creator string) ([]domain.CreatorHistoryEntry, error)
}

// TransactionSource fetches parsed transactions and wallet labels for a token.
type TransactionSource interface {
	FetchTransactions(ctx context.Context, mint string) (*domain.TransactionFeed, error)
}

// SocialSource fetches social stats and top tweets for a token.
type SocialSource interface {
	FetchSocial(ctx context.Context, mint string) (*domain.SocialProfile, error)
}
