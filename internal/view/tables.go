package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"solana-token-scope/internal/domain"
)

// Table names addressable by the UI.
const (
	TableCreatorHistory = "creator_history"
	TableCreatorTrades  = "creator_trades"
	TableSmartMoney     = "smart_money"
	TableTweets         = "tweets"
)

// Column headers.
const (
	HeaderSymbol    = "发币"
	HeaderComplete  = "成功"
	HeaderMarketCap = "市值"
	HeaderTime      = "时间"

	HeaderOp     = "操作"
	HeaderFrom   = "From"
	HeaderTo     = "To"
	HeaderPrice  = "价格"
	HeaderVolume = "金额"
	HeaderAmount = "数量"

	HeaderWallet    = "聪明钱"
	HeaderVolumeSOL = "金额(SOL)"

	HeaderAuthor   = "作者"
	HeaderText     = "内容"
	HeaderLikes    = "点赞"
	HeaderViews    = "浏览"
	HeaderRetweets = "转发"
)

// Clock returns the current time; relative-time columns read it at format time.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

var tradeOpLabels = map[domain.TradeOp]string{
	domain.TradeOpBuy:         "买入",
	domain.TradeOpSell:        "卖出",
	domain.TradeOpTransferIn:  "转入",
	domain.TradeOpTransferOut: "转出",
}

// TradeOpLabel returns the display label of op, blank for unknown ops.
func TradeOpLabel(op domain.TradeOp) string {
	return tradeOpLabels[op]
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

// NewCreatorHistoryTable builds the creator-history table, ordered by market cap
// then creation time, both descending.
func NewCreatorHistoryTable(entries []domain.CreatorHistoryEntry, clock Clock) *Table[domain.CreatorHistoryEntry] {
	type E = domain.CreatorHistoryEntry
	cols := []Column[E]{
		{
			Header: HeaderSymbol,
			Format: func(e E) string { return e.Symbol },
			Less:   lessString(func(e E) string { return e.Symbol }),
		},
		{
			Header: HeaderComplete,
			Format: func(e E) string { return yesNo(e.Complete) },
			Less:   lessBool(func(e E) bool { return e.Complete }),
		},
		{
			Header: HeaderMarketCap,
			Format: func(e E) string { return MarketCap(e.MarketCapUSD) },
			Less:   lessFloat(func(e E) float64 { return e.MarketCapUSD }),
		},
		{
			Header: HeaderTime,
			Format: func(e E) string { return RelativeTime(e.CreatedAt, clock.now()) },
			Less:   lessInt(func(e E) int64 { return e.CreatedAt.UnixMilli() }),
		},
	}

	ordered := append([]E(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.MarketCapUSD != b.MarketCapUSD {
			return a.MarketCapUSD > b.MarketCapUSD
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return NewTable(cols, ordered)
}

// NewCreatorTradeTable builds the creator-trade table in provider order.
// Addresses equal to creator display as "Dev".
func NewCreatorTradeTable(events []domain.CreatorTradeEvent, creator string, clock Clock) *Table[domain.CreatorTradeEvent] {
	type E = domain.CreatorTradeEvent
	party := func(addr string) string {
		if addr != "" && addr == creator {
			return "Dev"
		}
		return Address(addr)
	}
	cols := []Column[E]{
		{
			Header: HeaderOp,
			Format: func(e E) string { return TradeOpLabel(e.Op) },
			Less:   lessString(func(e E) string { return string(e.Op) }),
		},
		{
			Header: HeaderFrom,
			Format: func(e E) string { return party(e.From) },
			Less:   lessString(func(e E) string { return e.From }),
		},
		{
			Header: HeaderTo,
			Format: func(e E) string { return party(e.To) },
			Less:   lessString(func(e E) string { return e.To }),
		},
		{
			Header: HeaderPrice,
			Format: func(e E) string {
				if e.Price == 0 {
					return ""
				}
				return fmt.Sprintf("$%.6f", e.Price)
			},
			Less: lessFloat(func(e E) float64 { return e.Price }),
		},
		{
			Header: HeaderVolume,
			Format: func(e E) string { return IntegerOrBlank(e.Volume) },
			Less:   lessFloat(func(e E) float64 { return e.Volume }),
		},
		{
			Header: HeaderAmount,
			Format: func(e E) string { return IntegerOrBlank(e.Amount) },
			Less:   lessFloat(func(e E) float64 { return e.Amount }),
		},
		{
			Header: HeaderTime,
			Format: func(e E) string { return RelativeTime(e.Time, clock.now()) },
			Less:   lessInt(func(e E) int64 { return e.Time.Unix() }),
		},
	}
	return NewTable(cols, events)
}

// WalletLabel joins all labels of a record, falling back to a shortened address.
func WalletLabel(r domain.SmartMoneyRecord) string {
	if len(r.Labels) > 0 {
		return strings.Join(r.Labels, ", ")
	}
	if len(r.Address) > 6 {
		return r.Address[:6] + "..."
	}
	return r.Address
}

// NewSmartMoneyTable builds the smart-money table in aggregation order.
func NewSmartMoneyTable(records []domain.SmartMoneyRecord) *Table[domain.SmartMoneyRecord] {
	type R = domain.SmartMoneyRecord
	cols := []Column[R]{
		{
			Header: HeaderWallet,
			Format: WalletLabel,
			Less:   lessString(WalletLabel),
		},
		{
			Header: HeaderOp,
			Format: func(r R) string {
				if r.IsBuy {
					return "买入"
				}
				return "卖出"
			},
			Less: lessBool(func(r R) bool { return r.IsBuy }),
		},
		{
			Header: HeaderPrice,
			Format: func(r R) string { return fmt.Sprintf("$%.4f", r.PriceUSD) },
			Less:   lessFloat(func(r R) float64 { return r.PriceUSD }),
		},
		{
			Header: HeaderVolumeSOL,
			Format: func(r R) string { return Integer(r.VolumeNative) },
			Less:   lessFloat(func(r R) float64 { return r.VolumeNative }),
		},
	}
	return NewTable(cols, records)
}

// NewTweetTable builds the top-tweets table in provider order.
func NewTweetTable(tweets []domain.Tweet, clock Clock) *Table[domain.Tweet] {
	type W = domain.Tweet
	cols := []Column[W]{
		{
			Header: HeaderAuthor,
			Format: func(w W) string {
				name := w.UserName
				if w.UserScreenName != "" {
					name += " @" + w.UserScreenName
				}
				if w.Verified {
					name += " ✓"
				}
				return name
			},
			Less: lessString(func(w W) string { return w.UserScreenName }),
		},
		{
			Header: HeaderText,
			Format: func(w W) string { return w.Text },
		},
		{
			Header: HeaderLikes,
			Format: func(w W) string { return Integer(float64(w.Likes)) },
			Less:   lessInt(func(w W) int64 { return w.Likes }),
		},
		{
			Header: HeaderViews,
			Format: func(w W) string { return Integer(float64(w.Views)) },
			Less:   lessInt(func(w W) int64 { return w.Views }),
		},
		{
			Header: HeaderRetweets,
			Format: func(w W) string { return Integer(float64(w.Retweets)) },
			Less:   lessInt(func(w W) int64 { return w.Retweets }),
		},
		{
			Header: HeaderTime,
			Format: func(w W) string { return RelativeTime(w.CreatedAt, clock.now()) },
			Less:   lessInt(func(w W) int64 { return w.CreatedAt.Unix() }),
		},
	}
	return NewTable(cols, tweets)
}
