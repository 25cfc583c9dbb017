package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"solana-token-scope/internal/domain"
)

// DefaultSmartMoneyPageSize is the transaction page size.
const DefaultSmartMoneyPageSize = 30

// ChainFM is the transaction and wallet-label provider.
// Requests need a logged-in session cookie; without one the provider answers 401.
type ChainFM struct {
	http     *httpClient
	pageSize int
}

// NewChainFM creates a chain.fm client. cookie is forwarded verbatim when non-empty.
func NewChainFM(baseURL, cookie string, pageSize int, opts ...ClientOption) *ChainFM {
	if pageSize <= 0 {
		pageSize = DefaultSmartMoneyPageSize
	}
	if cookie != "" {
		opts = append(opts, WithHeader("Cookie", cookie))
	}
	return &ChainFM{
		http:     newHTTPClient(ProviderChainFM, baseURL, opts...),
		pageSize: pageSize,
	}
}

type chainFMBatch []struct {
	Result struct {
		Data struct {
			JSON struct {
				Data *chainFMData `json:"data"`
			} `json:"json"`
		} `json:"data"`
	} `json:"result"`
}

type chainFMData struct {
	ParsedTransactions []struct {
		Events []json.RawMessage `json:"events"`
	} `json:"parsedTransactions"`
	RenderContext struct {
		AddressLabelsMap map[string]json.RawMessage `json:"addressLabelsMap"`
	} `json:"renderContext"`
}

type chainFMEvent struct {
	Address string `json:"address"`
	Data    *struct {
		Order struct {
			PriceUSD     number `json:"price_usd"`
			VolumeNative number `json:"volume_native"`
		} `json:"order"`
		Input struct {
			Token string `json:"token"`
		} `json:"input"`
		Output struct {
			Token string `json:"token"`
		} `json:"output"`
	} `json:"data"`
}

type chainFMLabel struct {
	Label string `json:"label"`
}

// FetchTransactions returns the latest parsed transactions on mint and the label map
// of the wallets involved. Events that cannot be decoded are dropped and counted in
// TransactionFeed.Malformed; they never fail the fetch.
func (c *ChainFM) FetchTransactions(ctx context.Context, mint string) (*domain.TransactionFeed, error) {
	input, err := json.Marshal(map[string]interface{}{
		"0": map[string]interface{}{
			"json": map[string]interface{}{
				"page":            1,
				"pageSize":        c.pageSize,
				"dateRange":       nil,
				"token":           mint,
				"address":         []string{},
				"useFollowing":    true,
				"includeChannels": []string{},
				"lastUpdateTime":  nil,
				"events":          []string{},
			},
			"meta": map[string]interface{}{
				"values": map[string]interface{}{
					"dateRange":      []string{"undefined"},
					"lastUpdateTime": []string{"undefined"},
				},
			},
		},
	})
	if err != nil {
		return nil, c.http.fail(KindDecode, fmt.Errorf("marshal input: %w", err))
	}

	q := url.Values{}
	q.Set("batch", "1")
	q.Set("input", string(input))

	var batch chainFMBatch
	if err := c.http.getJSON(ctx, "/api/trpc/parsedTransaction.list", q, &batch); err != nil {
		return nil, err
	}
	if len(batch) == 0 || batch[0].Result.Data.JSON.Data == nil {
		return nil, c.http.fail(KindEmptyResult, errors.New("no transaction data"))
	}

	return decodeChainFM(batch[0].Result.Data.JSON.Data), nil
}

func decodeChainFM(data *chainFMData) *domain.TransactionFeed {
	feed := &domain.TransactionFeed{
		Transactions: make([]domain.RawTransaction, 0, len(data.ParsedTransactions)),
		Labels:       make(domain.LabelMap, len(data.RenderContext.AddressLabelsMap)),
	}

	for _, ptx := range data.ParsedTransactions {
		tx := domain.RawTransaction{Events: make([]domain.RawTransactionEvent, 0, len(ptx.Events))}
		for _, raw := range ptx.Events {
			var ev chainFMEvent
			if err := json.Unmarshal(raw, &ev); err != nil || ev.Address == "" || ev.Data == nil {
				feed.Malformed++
				continue
			}
			tx.Events = append(tx.Events, domain.RawTransactionEvent{
				Address: ev.Address,
				Data: domain.RawEventData{
					Order: domain.RawOrder{
						PriceUSD:     ev.Data.Order.PriceUSD.Float(),
						VolumeNative: ev.Data.Order.VolumeNative.Float(),
					},
					Input:  domain.TokenLeg{Token: ev.Data.Input.Token},
					Output: domain.TokenLeg{Token: ev.Data.Output.Token},
				},
			})
		}
		feed.Transactions = append(feed.Transactions, tx)
	}

	for addr, raw := range data.RenderContext.AddressLabelsMap {
		var labels []chainFMLabel
		if err := json.Unmarshal(raw, &labels); err != nil {
			continue
		}
		entries := make([]domain.AddressLabel, 0, len(labels))
		for _, l := range labels {
			entries = append(entries, domain.AddressLabel{Label: l.Label})
		}
		feed.Labels[addr] = entries
	}

	return feed
}
