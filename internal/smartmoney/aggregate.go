// Package smartmoney classifies labelled wallet trades on a token and folds
// them into buy/sell statistics.
package smartmoney

import (
	"fmt"
	"math"

	"solana-token-scope/internal/domain"
)

// Result is the output of one aggregation run.
type Result struct {
	Records []domain.SmartMoneyRecord
	Summary domain.SmartMoneySummary
	Skipped int // events dropped because their wallet carries no label
}

// Aggregate flattens every event of txs, keeps those whose wallet has at least
// one label in labels, and classifies each kept event as a buy when its output
// token equals contract. Records keep event order. Volumes are summed at full
// precision. Aggregate performs no I/O and never fails.
func Aggregate(txs []domain.RawTransaction, labels domain.LabelMap, contract string) Result {
	var res Result
	for _, tx := range txs {
		for _, ev := range tx.Events {
			names := labels.Labels(ev.Address)
			if len(names) == 0 {
				res.Skipped++
				continue
			}

			rec := domain.SmartMoneyRecord{
				Address:      ev.Address,
				Labels:       names,
				IsBuy:        ev.Data.Output.Token == contract,
				PriceUSD:     ev.Data.Order.PriceUSD,
				VolumeNative: ev.Data.Order.VolumeNative,
			}
			res.Records = append(res.Records, rec)

			if rec.IsBuy {
				res.Summary.BuyCount++
				res.Summary.BuyVolume += rec.VolumeNative
			} else {
				res.Summary.SellCount++
				res.Summary.SellVolume += rec.VolumeNative
			}
		}
	}
	return res
}

// SummaryText renders the one-line summary shown above the smart-money table.
// Volumes are truncated to whole SOL here and nowhere else.
func SummaryText(s domain.SmartMoneySummary) string {
	side := "净卖出"
	if s.IsNetBuy() {
		side = "净买入"
	}
	return fmt.Sprintf("聪明钱：买%d人 %dSOL，卖%d人 %dSOL，%s %dSOL",
		s.BuyCount, int64(s.BuyVolume),
		s.SellCount, int64(s.SellVolume),
		side, int64(math.Abs(s.NetVolume())))
}
