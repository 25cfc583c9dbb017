package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-token-scope/internal/activity"
	"solana-token-scope/internal/address"
	"solana-token-scope/internal/domain"
	"solana-token-scope/internal/pipeline"
	"solana-token-scope/internal/view"
)

func init() {
	color.NoColor = true
}

func TestSnapshot(t *testing.T) {
	s := pipeline.Snapshot{
		Generation:     1,
		State:          pipeline.StateDone,
		Contract:       "CA",
		Profile:        &domain.TokenProfile{Name: "Scope", Symbol: "SCP", Creator: "Dev111", MarketCapUSD: 2500},
		CreatorKind:    address.KindWallet,
		TradeStatus:    "加仓",
		HistorySummary: "发币：3次，成功：1次，最高市值：1.5M",
		SmartMoney:     &domain.SmartMoneySummary{SellCount: 1, SellVolume: 4},
		SmartMoneyText: "聪明钱：买0人 0SOL，卖1人 4SOL，净卖出 4SOL",
		StageErrors:    map[pipeline.Stage]string{pipeline.StageSocial: "返回数据为空"},
		Tables: map[string]view.Grid{
			view.TableSmartMoney: {Headers: []string{"聪明钱", "操作"}, Rows: [][]string{{"whale", "卖出"}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Snapshot(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "代币 CA")
	assert.Contains(t, out, "状态：完成")
	assert.Contains(t, out, "Scope (SCP)  市值 2.5K")
	assert.Contains(t, out, "DEV：Dev111 [wallet]")
	assert.Contains(t, out, "DEV操作：加仓")
	assert.Contains(t, out, "净卖出 4SOL")
	assert.Contains(t, out, "[social] 返回数据为空")
	assert.Contains(t, out, "聪明钱\n")
	assert.Contains(t, out, "whale")
	assert.NotContains(t, out, "开发者历史\n")
}

func TestSnapshot_Failed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Snapshot(&buf, pipeline.Snapshot{State: pipeline.StateFailed, FailedStage: pipeline.StageLookup}))
	assert.Contains(t, buf.String(), "失败 (lookup)")
}

func TestActivity(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	entries := []activity.Entry{
		{Time: at, Operation: "获取聪明钱数据", Status: "错误 - 需要登录", Link: activity.ChainFMLink},
		{Time: at, Operation: "查询代币", Status: activity.StatusPending},
	}

	var buf bytes.Buffer
	require.NoError(t, Activity(&buf, entries))
	out := buf.String()

	assert.Contains(t, out, "09:30:00")
	assert.Contains(t, out, "https://chain.fm")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("获取聪明钱数据")), bytes.Index(buf.Bytes(), []byte("查询代币")))
}
