package domain

import "time"

// TokenProfile is the token snapshot returned by the token registry.
// Created once per query generation and never mutated.
type TokenProfile struct {
	Mint         string    // contract (mint) address
	Name         string    // token name
	Symbol       string    // ticker symbol
	Creator      string    // launching wallet; empty means downstream stages cannot run
	CreatedAt    time.Time // launch time, zero if unknown
	Description  string
	ImageURI     string
	Twitter      string
	Website      string
	MarketCapUSD float64 // usd market cap at lookup time
	Complete     bool    // bonding curve completed
}

// HasCreator reports whether the profile carries a creator address.
func (p *TokenProfile) HasCreator() bool {
	return p != nil && p.Creator != ""
}
