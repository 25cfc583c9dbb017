package pipeline

import (
	"context"
	"fmt"

	"solana-token-scope/internal/activity"
	"solana-token-scope/internal/address"
	"solana-token-scope/internal/domain"
	"solana-token-scope/internal/smartmoney"
	"solana-token-scope/internal/view"
)

// Snapshot is a read-only copy of the active generation's state and views.
type Snapshot struct {
	Generation  Generation       `json:"generation"`
	State       State            `json:"state"`
	FailedStage Stage            `json:"failed_stage,omitempty"`
	Contract    string           `json:"contract,omitempty"`
	StageErrors map[Stage]string `json:"stage_errors,omitempty"`

	Profile     *domain.TokenProfile `json:"profile,omitempty"`
	CreatorKind address.Kind         `json:"creator_kind,omitempty"`

	TradeStatus    string `json:"trade_status,omitempty"`
	HistorySummary string `json:"history_summary,omitempty"`

	SmartMoney        *domain.SmartMoneySummary `json:"smart_money,omitempty"`
	SmartMoneyText    string                    `json:"smart_money_text,omitempty"`
	SmartMoneySkipped int                       `json:"smart_money_skipped"`
	MalformedEvents   int                       `json:"malformed_events"`

	Social *domain.SocialStats `json:"social,omitempty"`

	// Tables holds every loaded table keyed by view.Table* name.
	Tables map[string]view.Grid `json:"tables"`

	// StaleDiscarded counts results dropped because their generation was superseded.
	StaleDiscarded uint64 `json:"stale_discarded"`
}

// Snapshot returns a copy of the current state, taken on the control loop.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	err := c.do(ctx, func() {
		s = c.snapshot()
	})
	return s, err
}

func (c *Controller) snapshot() Snapshot {
	s := Snapshot{
		State:          StateIdle,
		Tables:         make(map[string]view.Grid),
		StaleDiscarded: c.stale,
	}
	r := c.cur
	if r == nil {
		return s
	}

	s.Generation = r.gen
	s.State = r.state
	s.FailedStage = r.failedAt
	s.Contract = r.contract
	if len(r.stageErrors) > 0 {
		s.StageErrors = make(map[Stage]string, len(r.stageErrors))
		for k, v := range r.stageErrors {
			s.StageErrors[k] = v
		}
	}

	if r.profile != nil {
		p := *r.profile
		s.Profile = &p
		s.CreatorKind = address.Classify(p.Creator)
	}
	if r.tradeInfo != nil {
		s.TradeStatus = view.CreatorTradeStatus(r.tradeInfo)
	}
	if r.historyTable != nil {
		s.HistorySummary = view.CreatorHistorySummary(r.historyRows, c.historyLimit)
	}
	if r.smart != nil {
		sum := r.smart.Summary
		s.SmartMoney = &sum
		s.SmartMoneyText = smartmoney.SummaryText(sum)
		s.SmartMoneySkipped = r.smart.Skipped
		s.MalformedEvents = r.malformed
	}
	if r.socialStats != nil {
		st := *r.socialStats
		s.Social = &st
	}

	if r.historyTable != nil {
		s.Tables[view.TableCreatorHistory] = r.historyTable.Grid()
	}
	if r.tradeTable != nil {
		s.Tables[view.TableCreatorTrades] = r.tradeTable.Grid()
	}
	if r.smartTable != nil {
		s.Tables[view.TableSmartMoney] = r.smartTable.GridWithLinks(func(rec domain.SmartMoneyRecord) string {
			return activity.AddressLink(rec.Address)
		})
	}
	if r.tweetTable != nil {
		s.Tables[view.TableTweets] = r.tweetTable.GridWithLinks(func(t domain.Tweet) string { return t.URL() })
	}
	return s
}

// sortable is the non-generic face of a view.Table.
type sortable interface {
	SortByHeader(header string, ascending bool) error
}

// Sort re-sorts one of the active generation's tables by column header.
func (c *Controller) Sort(ctx context.Context, table, column string, ascending bool) error {
	var sortErr error
	err := c.do(ctx, func() {
		t, err := c.table(table)
		if err != nil {
			sortErr = err
			return
		}
		sortErr = t.SortByHeader(column, ascending)
	})
	if err != nil {
		return err
	}
	return sortErr
}

func (c *Controller) table(name string) (sortable, error) {
	r := c.cur
	var t sortable
	switch name {
	case view.TableCreatorHistory:
		if r != nil && r.historyTable != nil {
			t = r.historyTable
		}
	case view.TableCreatorTrades:
		if r != nil && r.tradeTable != nil {
			t = r.tradeTable
		}
	case view.TableSmartMoney:
		if r != nil && r.smartTable != nil {
			t = r.smartTable
		}
	case view.TableTweets:
		if r != nil && r.tweetTable != nil {
			t = r.tweetTable
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrTableNotReady, name)
	}
	return t, nil
}
