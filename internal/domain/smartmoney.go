package domain

// RawTransaction is a parsed transaction from the transaction/label provider.
type RawTransaction struct {
	Events []RawTransactionEvent
}

// RawTransactionEvent is a single swap-like event inside a RawTransaction.
// Read-only input to smart-money aggregation.
type RawTransactionEvent struct {
	Address string
	Data    RawEventData
}

// RawEventData holds the order and the token legs of an event.
type RawEventData struct {
	Order  RawOrder
	Input  TokenLeg
	Output TokenLeg
}

// RawOrder carries the priced part of an event. Missing values decode to 0.
type RawOrder struct {
	PriceUSD     float64
	VolumeNative float64 // SOL
}

// TokenLeg identifies the token on one side of an event.
type TokenLeg struct {
	Token string
}

// AddressLabel is one externally assigned wallet label.
type AddressLabel struct {
	Label string
}

// LabelMap maps a wallet address to its labels in provider order.
type LabelMap map[string][]AddressLabel

// Labels returns the non-empty label strings for address, in order.
func (m LabelMap) Labels(address string) []string {
	entries := m[address]
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Label != "" {
			out = append(out, e.Label)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// TransactionFeed is the transaction/label provider result.
type TransactionFeed struct {
	Transactions []RawTransaction
	Labels       LabelMap
	Malformed    int // events dropped while decoding
}

// SmartMoneyRecord is one qualifying event of a labelled wallet.
type SmartMoneyRecord struct {
	Address      string
	Labels       []string
	IsBuy        bool
	PriceUSD     float64
	VolumeNative float64
}

// SmartMoneySummary folds SmartMoneyRecords by side.
type SmartMoneySummary struct {
	BuyCount   int
	SellCount  int
	BuyVolume  float64
	SellVolume float64
}

// NetVolume returns BuyVolume - SellVolume.
func (s SmartMoneySummary) NetVolume() float64 {
	return s.BuyVolume - s.SellVolume
}

// IsNetBuy reports whether the net volume is non-negative.
func (s SmartMoneySummary) IsNetBuy() bool {
	return s.NetVolume() >= 0
}
