package domain

import "time"

// CreatorHistoryEntry is one coin previously launched by a creator.
type CreatorHistoryEntry struct {
	Mint         string
	Symbol       string
	Complete     bool    // graduated from the bonding curve
	MarketCapUSD float64 // usd market cap
	CreatedAt    time.Time
}

// TradeOp is the kind of a creator trade event.
type TradeOp string

// Trade op constants
const (
	TradeOpBuy         TradeOp = "buy"
	TradeOpSell        TradeOp = "sell"
	TradeOpTransferIn  TradeOp = "transfer_in"
	TradeOpTransferOut TradeOp = "transfer_out"
)

// CreatorTradeEvent is one trade or transfer by the creator on the queried token.
// Sequences keep provider order; they are only re-ordered on display.
type CreatorTradeEvent struct {
	Op     TradeOp
	From   string
	To     string
	Price  float64 // usd price per token
	Volume float64 // usd volume
	Amount float64 // token amount
	Time   time.Time
}

// CreatorTradeInfo is the creator-trade provider result.
type CreatorTradeInfo struct {
	Events           []CreatorTradeEvent
	PositionClear    bool    // creator sold everything
	PositionIncrease bool    // creator added to the position
	PositionDecrease bool    // creator reduced the position
	TransferOut      float64 // tokens transferred out by the creator
}
