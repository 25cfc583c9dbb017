package gateway

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"solana-token-scope/internal/domain"
)

// DefaultHistoryLimit is the creator-history page size.
const DefaultHistoryLimit = 10

// PumpFun is the token registry and creator-history provider.
type PumpFun struct {
	http         *httpClient
	historyLimit int
}

// NewPumpFun creates a pump.fun client.
func NewPumpFun(baseURL string, historyLimit int, opts ...ClientOption) *PumpFun {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &PumpFun{
		http:         newHTTPClient(ProviderPumpFun, baseURL, opts...),
		historyLimit: historyLimit,
	}
}

// HistoryLimit returns the creator-history page size.
func (p *PumpFun) HistoryLimit() int {
	return p.historyLimit
}

type pumpCoin struct {
	Mint             string `json:"mint"`
	Name             string `json:"name"`
	Symbol           string `json:"symbol"`
	Creator          string `json:"creator"`
	CreatedTimestamp number `json:"created_timestamp"` // ms
	Description      string `json:"description"`
	ImageURI         string `json:"image_uri"`
	Twitter          string `json:"twitter"`
	Website          string `json:"website"`
	USDMarketCap     number `json:"usd_market_cap"`
	Complete         bool   `json:"complete"`
}

// LookupToken searches the registry for an exact contract match and returns the first hit.
func (p *PumpFun) LookupToken(ctx context.Context, mint string) (*domain.TokenProfile, error) {
	q := url.Values{}
	q.Set("offset", "0")
	q.Set("limit", "50")
	q.Set("sort", "market_cap")
	q.Set("includeNsfw", "false")
	q.Set("order", "DESC")
	q.Set("searchTerm", mint)
	q.Set("type", "exact")

	var coins []pumpCoin
	if err := p.http.getJSON(ctx, "/coins/search", q, &coins); err != nil {
		return nil, err
	}
	if len(coins) == 0 {
		return nil, p.http.fail(KindEmptyResult, errors.New("no token matches "+mint))
	}

	c := coins[0]
	return &domain.TokenProfile{
		Mint:         c.Mint,
		Name:         c.Name,
		Symbol:       c.Symbol,
		Creator:      c.Creator,
		CreatedAt:    unixMillis(c.CreatedTimestamp),
		Description:  c.Description,
		ImageURI:     c.ImageURI,
		Twitter:      c.Twitter,
		Website:      c.Website,
		MarketCapUSD: c.USDMarketCap.Float(),
		Complete:     c.Complete,
	}, nil
}

// FetchCreatorHistory returns up to HistoryLimit coins launched by creator, in provider order.
func (p *PumpFun) FetchCreatorHistory(ctx context.Context, creator string) ([]domain.CreatorHistoryEntry, error) {
	q := url.Values{}
	q.Set("offset", "0")
	q.Set("limit", strconv.Itoa(p.historyLimit))
	q.Set("includeNsfw", "false")

	var coins []pumpCoin
	if err := p.http.getJSON(ctx, "/coins/user-created-coins/"+url.PathEscape(creator), q, &coins); err != nil {
		return nil, err
	}

	entries := make([]domain.CreatorHistoryEntry, 0, len(coins))
	for _, c := range coins {
		entries = append(entries, domain.CreatorHistoryEntry{
			Mint:         c.Mint,
			Symbol:       c.Symbol,
			Complete:     c.Complete,
			MarketCapUSD: c.USDMarketCap.Float(),
			CreatedAt:    unixMillis(c.CreatedTimestamp),
		})
	}
	return entries, nil
}
