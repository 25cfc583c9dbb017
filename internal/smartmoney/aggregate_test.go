package smartmoney

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-token-scope/internal/domain"
)

func event(addr, in, out string, price, volume float64) domain.RawTransactionEvent {
	return domain.RawTransactionEvent{
		Address: addr,
		Data: domain.RawEventData{
			Order:  domain.RawOrder{PriceUSD: price, VolumeNative: volume},
			Input:  domain.TokenLeg{Token: in},
			Output: domain.TokenLeg{Token: out},
		},
	}
}

func TestAggregate_SingleLabelledBuy(t *testing.T) {
	txs := []domain.RawTransaction{{Events: []domain.RawTransactionEvent{
		{Address: "A", Data: domain.RawEventData{
			Order:  domain.RawOrder{VolumeNative: 10, PriceUSD: 1.5},
			Output: domain.TokenLeg{Token: "CA"},
		}},
	}}}
	labels := domain.LabelMap{"A": {{Label: "whale"}}}

	res := Aggregate(txs, labels, "CA")

	require.Len(t, res.Records, 1)
	assert.Equal(t, domain.SmartMoneyRecord{
		Address: "A", Labels: []string{"whale"}, IsBuy: true, PriceUSD: 1.5, VolumeNative: 10,
	}, res.Records[0])
	assert.Equal(t, domain.SmartMoneySummary{BuyCount: 1, BuyVolume: 10}, res.Summary)
	assert.Zero(t, res.Skipped)
}

func TestAggregate_ClassifiesAndKeepsAllLabels(t *testing.T) {
	txs := []domain.RawTransaction{
		{Events: []domain.RawTransactionEvent{
			event("A", "SOL", "CA", 1, 2.25),
			event("B", "CA", "SOL", 1, 1.5),
		}},
		{Events: []domain.RawTransactionEvent{
			event("U", "SOL", "CA", 1, 1000),
			event("A", "CA", "SOL", 1, 0.75),
			event("E", "SOL", "CA", 1, 0), // missing volume still counts
		}},
	}
	labels := domain.LabelMap{
		"A": {{Label: "whale"}, {Label: "kol"}},
		"B": {{Label: "sniper"}},
		"E": {{Label: ""}, {Label: "early"}},
		"Z": {{Label: ""}},
	}

	res := Aggregate(txs, labels, "CA")

	require.Len(t, res.Records, 4)
	assert.Equal(t, []string{"whale", "kol"}, res.Records[0].Labels)
	assert.True(t, res.Records[0].IsBuy)
	assert.False(t, res.Records[1].IsBuy)
	assert.False(t, res.Records[2].IsBuy)
	assert.Equal(t, []string{"early"}, res.Records[3].Labels)

	assert.Equal(t, 2, res.Summary.BuyCount)
	assert.Equal(t, 2, res.Summary.SellCount)
	assert.Equal(t, 2.25, res.Summary.BuyVolume)
	assert.Equal(t, 2.25, res.Summary.SellVolume)
	assert.Equal(t, 1, res.Skipped)
	assert.True(t, res.Summary.IsNetBuy())
}

func TestAggregate_NeitherLegMatchesIsSell(t *testing.T) {
	txs := []domain.RawTransaction{{Events: []domain.RawTransactionEvent{event("A", "X", "Y", 1, 3)}}}
	res := Aggregate(txs, domain.LabelMap{"A": {{Label: "whale"}}}, "CA")

	require.Len(t, res.Records, 1)
	assert.False(t, res.Records[0].IsBuy)
	assert.Equal(t, 3.0, res.Summary.SellVolume)
}

func TestAggregate_EmptyInput(t *testing.T) {
	res := Aggregate(nil, nil, "CA")
	assert.Empty(t, res.Records)
	assert.Equal(t, domain.SmartMoneySummary{}, res.Summary)
}

func TestAggregate_UnlabelledNeverContribute(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	addrs := []string{"A", "B", "C", "U1", "U2"}
	labels := domain.LabelMap{"A": {{Label: "whale"}}, "B": {{Label: "kol"}}, "C": {{Label: "sniper"}}}

	for round := 0; round < 50; round++ {
		var txs []domain.RawTransaction
		var wantBuy, wantSell float64
		for i := 0; i < 1+rng.Intn(5); i++ {
			var tx domain.RawTransaction
			for j := 0; j < rng.Intn(6); j++ {
				addr := addrs[rng.Intn(len(addrs))]
				out := "SOL"
				if rng.Intn(2) == 0 {
					out = "CA"
				}
				vol := float64(rng.Intn(10000)) / 100
				tx.Events = append(tx.Events, event(addr, "?", out, 1, vol))
				if _, ok := labels[addr]; ok {
					if out == "CA" {
						wantBuy += vol
					} else {
						wantSell += vol
					}
				}
			}
			txs = append(txs, tx)
		}

		res := Aggregate(txs, labels, "CA")

		for _, r := range res.Records {
			assert.NotContains(t, []string{"U1", "U2"}, r.Address)
		}
		assert.InDelta(t, wantBuy, res.Summary.BuyVolume, 1e-9)
		assert.InDelta(t, wantSell, res.Summary.SellVolume, 1e-9)
		assert.Equal(t, res.Summary.BuyVolume-res.Summary.SellVolume, res.Summary.NetVolume())
		assert.Equal(t, res.Summary.NetVolume() >= 0, res.Summary.IsNetBuy())
		assert.Equal(t, len(res.Records), res.Summary.BuyCount+res.Summary.SellCount)
	}
}

func TestSummaryText(t *testing.T) {
	tests := []struct {
		name    string
		summary domain.SmartMoneySummary
		want    string
	}{
		{
			name:    "net buy",
			summary: domain.SmartMoneySummary{BuyCount: 3, SellCount: 1, BuyVolume: 12.9, SellVolume: 2.5},
			want:    "聪明钱：买3人 12SOL，卖1人 2SOL，净买入 10SOL",
		},
		{
			name:    "net sell",
			summary: domain.SmartMoneySummary{BuyCount: 1, SellCount: 2, BuyVolume: 1, SellVolume: 7.5},
			want:    "聪明钱：买1人 1SOL，卖2人 7SOL，净卖出 6SOL",
		},
		{
			name: "empty is net buy",
			want: "聪明钱：买0人 0SOL，卖0人 0SOL，净买入 0SOL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummaryText(tt.summary))
		})
	}
}
