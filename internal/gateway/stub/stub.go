// Package stub provides in-memory fakes of the gateway providers for tests.
package stub

import (
	"context"
	"sync"

	"solana-token-scope/internal/domain"
	"solana-token-scope/internal/gateway"
)

// Calls counts invocations of one fake operation.
type Calls struct {
	mu   sync.Mutex
	n    int
	keys []string
}

func (c *Calls) record(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	c.keys = append(c.keys, key)
}

// Count returns the number of calls.
func (c *Calls) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Keys returns the keys passed to each call in order.
func (c *Calls) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.keys...)
}

// wait blocks on gate if non-nil, honouring ctx.
func wait(ctx context.Context, gate <-chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TokenRegistry implements gateway.TokenRegistry.
type TokenRegistry struct {
	Profiles map[string]*domain.TokenProfile
	Err      error
	Gate     <-chan struct{} // optional; calls block until it is closed
	Calls    Calls
}

// NewTokenRegistry creates an empty registry fake.
func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{Profiles: make(map[string]*domain.TokenProfile)}
}

// LookupToken returns the stored profile or an EmptyResult error.
func (s *TokenRegistry) LookupToken(ctx context.Context, mint string) (*domain.TokenProfile, error) {
	s.Calls.record(mint)
	if err := wait(ctx, s.Gate); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Profiles[mint]
	if !ok {
		return nil, gateway.NewError(gateway.ProviderPumpFun, gateway.KindEmptyResult, gateway.ErrEmptyResult)
	}
	return p, nil
}

// CreatorTrades implements gateway.CreatorTradeSource.
type CreatorTrades struct {
	Trades map[string]*domain.CreatorTradeInfo
	Err    error
	Gate   <-chan struct{}
	Calls  Calls
}

// NewCreatorTrades creates an empty trades fake.
func NewCreatorTrades() *CreatorTrades {
	return &CreatorTrades{Trades: make(map[string]*domain.CreatorTradeInfo)}
}

// FetchCreatorTrades returns the stored trades; unknown mints yield zero trades.
func (s *CreatorTrades) FetchCreatorTrades(ctx context.Context, mint string) (*domain.CreatorTradeInfo, error) {
	s.Calls.record(mint)
	if err := wait(ctx, s.Gate); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if info, ok := s.Trades[mint]; ok {
		return info, nil
	}
	return &domain.CreatorTradeInfo{}, nil
}

// CreatorHistory implements gateway.CreatorHistorySource.
type CreatorHistory struct {
	History map[string][]domain.CreatorHistoryEntry
	Err     error
	Gate    <-chan struct{}
	Calls   Calls
}

// NewCreatorHistory creates an empty history fake.
func NewCreatorHistory() *CreatorHistory {
	return &CreatorHistory{History: make(map[string][]domain.CreatorHistoryEntry)}
}

// FetchCreatorHistory returns the stored entries for creator.
func (s *CreatorHistory) FetchCreatorHistory(ctx context.Context, creator string) ([]domain.CreatorHistoryEntry, error) {
	s.Calls.record(creator)
	if err := wait(ctx, s.Gate); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.History[creator], nil
}

// Transactions implements gateway.TransactionSource.
// GateFor, when set, selects a per-mint gate and overrides Gate.
type Transactions struct {
	Feeds   map[string]*domain.TransactionFeed
	Err     error
	Gate    <-chan struct{}
	GateFor map[string]<-chan struct{}
	Calls   Calls
}

// NewTransactions creates an empty transactions fake.
func NewTransactions() *Transactions {
	return &Transactions{
		Feeds:   make(map[string]*domain.TransactionFeed),
		GateFor: make(map[string]<-chan struct{}),
	}
}

// FetchTransactions returns the stored feed; unknown mints yield an empty feed.
// It ignores ctx cancellation once its gate opens, like a provider whose
// response is already on the wire.
func (s *Transactions) FetchTransactions(ctx context.Context, mint string) (*domain.TransactionFeed, error) {
	s.Calls.record(mint)
	gate := s.Gate
	if g, ok := s.GateFor[mint]; ok {
		gate = g
	}
	if gate != nil {
		<-gate
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if feed, ok := s.Feeds[mint]; ok {
		return feed, nil
	}
	return &domain.TransactionFeed{Labels: domain.LabelMap{}}, nil
}

// Social implements gateway.SocialSource.
type Social struct {
	Profiles map[string]*domain.SocialProfile
	Err      error
	Gate     <-chan struct{}
	Calls    Calls
}

// NewSocial creates an empty social fake.
func NewSocial() *Social {
	return &Social{Profiles: make(map[string]*domain.SocialProfile)}
}

// FetchSocial returns the stored profile or an EmptyResult error.
func (s *Social) FetchSocial(ctx context.Context, mint string) (*domain.SocialProfile, error) {
	s.Calls.record(mint)
	if err := wait(ctx, s.Gate); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Profiles[mint]
	if !ok {
		return nil, gateway.NewError(gateway.ProviderPumpNews, gateway.KindEmptyResult, gateway.ErrEmptyResult)
	}
	return p, nil
}

// Compile-time interface checks.
var (
	_ gateway.TokenRegistry        = (*TokenRegistry)(nil)
	_ gateway.CreatorTradeSource   = (*CreatorTrades)(nil)
	_ gateway.CreatorHistorySource = (*CreatorHistory)(nil)
	_ gateway.TransactionSource    = (*Transactions)(nil)
	_ gateway.SocialSource         = (*Social)(nil)
	_ gateway.TokenRegistry        = (*gateway.PumpFun)(nil)
	_ gateway.CreatorHistorySource = (*gateway.PumpFun)(nil)
	_ gateway.CreatorTradeSource   = (*gateway.Debot)(nil)
	_ gateway.TransactionSource    = (*gateway.ChainFM)(nil)
	_ gateway.SocialSource         = (*gateway.PumpNews)(nil)
)
