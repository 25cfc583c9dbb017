package gateway

import (
	"context"
	"net/url"

	"solana-token-scope/internal/domain"
)

// Debot is the creator-trade provider.
type Debot struct {
	http *httpClient
}

// NewDebot creates a debot client.
func NewDebot(baseURL string, opts ...ClientOption) *Debot {
	return &Debot{http: newHTTPClient(ProviderDebot, baseURL, opts...)}
}

type debotResponse struct {
	Data *debotDevInfo `json:"data"`
}

type debotDevInfo struct {
	Transactions     []debotTrade `json:"transactions"`
	PositionClear    bool         `json:"position_clear"`
	PositionIncrease bool         `json:"position_increase"`
	PositionDecrease bool         `json:"position_decrease"`
	TransOutAmount   number       `json:"trans_out_amount"`
}

type debotTrade struct {
	Op     string `json:"op"`
	From   string `json:"from"`
	To     string `json:"to"`
	Price  number `json:"price"`
	Volume number `json:"volume"`
	Amount number `json:"amount"`
	Time   number `json:"time"` // seconds
}

var debotOps = map[string]domain.TradeOp{
	"buy":       domain.TradeOpBuy,
	"sell":      domain.TradeOpSell,
	"trans_in":  domain.TradeOpTransferIn,
	"trans_out": domain.TradeOpTransferOut,
}

// FetchCreatorTrades returns the creator's trades on mint in provider order.
// A response without data is a successful fetch with zero trades.
func (d *Debot) FetchCreatorTrades(ctx context.Context, mint string) (*domain.CreatorTradeInfo, error) {
	q := url.Values{}
	q.Set("chain", "solana")
	q.Set("token", mint)

	var resp debotResponse
	if err := d.http.getJSON(ctx, "/api/dashboard/token/dev/info", q, &resp); err != nil {
		return nil, err
	}

	info := &domain.CreatorTradeInfo{}
	if resp.Data == nil {
		return info, nil
	}

	info.PositionClear = resp.Data.PositionClear
	info.PositionIncrease = resp.Data.PositionIncrease
	info.PositionDecrease = resp.Data.PositionDecrease
	info.TransferOut = resp.Data.TransOutAmount.Float()
	info.Events = make([]domain.CreatorTradeEvent, 0, len(resp.Data.Transactions))
	for _, t := range resp.Data.Transactions {
		op, ok := debotOps[t.Op]
		if !ok {
			op = domain.TradeOp(t.Op)
		}
		info.Events = append(info.Events, domain.CreatorTradeEvent{
			Op:     op,
			From:   t.From,
			To:     t.To,
			Price:  t.Price.Float(),
			Volume: t.Volume.Float(),
			Amount: t.Amount.Float(),
			Time:   unixSeconds(t.Time),
		})
	}
	return info, nil
}
