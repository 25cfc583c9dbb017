package view

import (
	"fmt"
	"strings"

	"solana-token-scope/internal/domain"
)

// CreatorHistorySummary renders "发币：N次，成功：M次，最高市值：X".
// Counts at or above limit get a "+" since the provider page is capped.
func CreatorHistorySummary(entries []domain.CreatorHistoryEntry, limit int) string {
	if len(entries) == 0 {
		return "未找到开发者历史信息"
	}
	success := 0
	maxCap := 0.0
	for _, e := range entries {
		if e.Complete {
			success++
		}
		if e.MarketCapUSD > maxCap {
			maxCap = e.MarketCapUSD
		}
	}
	return fmt.Sprintf("发币：%s次，成功：%s次，最高市值：%s",
		CountPlus(len(entries), limit), CountPlus(success, limit), MarketCap(maxCap))
}

// CreatorTradeStatus summarises the creator's position flags.
func CreatorTradeStatus(info *domain.CreatorTradeInfo) string {
	if info == nil {
		return "无操作"
	}
	var status []string
	if info.PositionClear {
		status = append(status, "清仓")
	}
	if info.PositionIncrease {
		status = append(status, "加仓")
	}
	if info.PositionDecrease {
		status = append(status, "减仓")
	}
	if info.TransferOut > 0 {
		status = append(status, "转出")
	}
	if len(status) == 0 {
		return "无操作"
	}
	return strings.Join(status, "，")
}
