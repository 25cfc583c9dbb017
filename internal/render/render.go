// Package render prints a finished pipeline snapshot to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"solana-token-scope/internal/activity"
	"solana-token-scope/internal/pipeline"
	"solana-token-scope/internal/view"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
	muted   = color.New(color.FgHiBlack)
)

// section order and titles
var tables = []struct {
	name  string
	title string
}{
	{view.TableCreatorTrades, "开发者交易"},
	{view.TableCreatorHistory, "开发者历史"},
	{view.TableSmartMoney, "聪明钱"},
	{view.TableTweets, "热门推文"},
}

// Snapshot writes a human-readable report of s to w.
func Snapshot(w io.Writer, s pipeline.Snapshot) error {
	p := &printer{w: w}

	p.line(heading.Sprintf("代币 %s", s.Contract))
	p.line(fmt.Sprintf("状态：%s", stateText(s)))

	if s.Profile != nil {
		pr := s.Profile
		p.line(fmt.Sprintf("%s (%s)  市值 %s", pr.Name, pr.Symbol, view.MarketCap(pr.MarketCapUSD)))
		p.line(fmt.Sprintf("DEV：%s [%s]  %s", pr.Creator, s.CreatorKind, muted.Sprint(activity.AddressLink(pr.Creator))))
		if pr.Twitter != "" {
			p.line("Twitter：" + pr.Twitter)
		}
		if pr.Website != "" {
			p.line("Website：" + pr.Website)
		}
	}
	if s.TradeStatus != "" {
		p.line("DEV操作：" + s.TradeStatus)
	}
	if s.HistorySummary != "" {
		p.line(s.HistorySummary)
	}
	if s.SmartMoney != nil {
		c := good
		if !s.SmartMoney.IsNetBuy() {
			c = bad
		}
		p.line(c.Sprint(s.SmartMoneyText))
	}
	if s.Social != nil {
		st := s.Social
		p.line(fmt.Sprintf("推文数：%d  关注者：%s  点赞：%s  浏览：%s  官方推文：%d  智能买入：%d",
			st.FilterTweets, view.Integer(float64(st.Followers)), view.Integer(float64(st.Likes)),
			view.Integer(float64(st.Views)), st.OfficialTweets, st.SmartBuy))
		if st.Summary != "" {
			p.line(st.Summary)
		}
	}
	for _, stage := range pipeline.Stages {
		if msg, ok := s.StageErrors[stage]; ok {
			p.line(bad.Sprintf("[%s] %s", stage, msg))
		}
	}

	for _, t := range tables {
		g, ok := s.Tables[t.name]
		if !ok {
			continue
		}
		p.line("")
		p.line(heading.Sprint(t.title))
		p.grid(g)
	}
	return p.err
}

// Activity writes the activity log, most recent first.
func Activity(w io.Writer, entries []activity.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		status := e.Status
		switch {
		case strings.HasPrefix(status, activity.StatusSuccess):
			status = good.Sprint(status)
		case strings.HasPrefix(status, activity.StatusFailed), strings.HasPrefix(status, activity.StatusError):
			status = bad.Sprint(status)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Time.Format("15:04:05"), e.Operation, status, muted.Sprint(e.Link)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func stateText(s pipeline.Snapshot) string {
	switch s.State {
	case pipeline.StateDone:
		return good.Sprint("完成")
	case pipeline.StateFailed:
		return bad.Sprintf("失败 (%s)", s.FailedStage)
	default:
		return string(s.State)
	}
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) grid(g view.Grid) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(g.Headers, "\t"))
	for _, row := range g.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = colorCell(cell)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	p.err = tw.Flush()
}

func colorCell(cell string) string {
	switch cell {
	case "买入":
		return good.Sprint(cell)
	case "卖出":
		return bad.Sprint(cell)
	}
	return strings.ReplaceAll(cell, "\n", " ")
}
