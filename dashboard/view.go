package dashboard

import (
	"strconv"
	"time"

	"github.com/Millionaireguardian/polymarket-dashboard/loader"
	"github.com/Millionaireguardian/polymarket-dashboard/reconcile"
	"github.com/Millionaireguardian/polymarket-dashboard/summary"
	"github.com/Millionaireguardian/polymarket-dashboard/trades"
)

// Row is one display-ready trade table row. Money fields are formatted
// strings; Balance always carries the reconstructed value.
type Row struct {
	Timestamp string `json:"timestamp"`
	Market    string `json:"market"`
	Action    string `json:"action"`
	Price     string `json:"price"`
	Amount    string `json:"amount"`
	PnL       string `json:"pnl"`
	PnLClass  string `json:"pnlClass"`
	Balance   string `json:"balance"`
}

type tradesResponse struct {
	Rows  []Row  `json:"rows"`
	Count int    `json:"count"`
	Total int    `json:"total"`
	Query string `json:"query,omitempty"`
}

type statusResponse struct {
	loader.Status
	BotActive    bool   `json:"botActive"`
	PollInterval string `json:"pollInterval"`
}

// ChartData is the render-ready payload for the balance line chart and the
// win-rate donut: parallel label/value series plus the win/loss pair.
type ChartData struct {
	Period   string    `json:"period"`
	Labels   []string  `json:"labels"`
	Balances []float64 `json:"balances"`
	Wins     int       `json:"wins"`
	Losses   int       `json:"losses"`
}

// summaryView mirrors summary.Summary with pre-formatted strings for the
// server-rendered index page.
type summaryView struct {
	Balance         string
	BalanceChange   string
	BalancePercent  string
	BalanceUp       bool
	TotalPnL        string
	TotalPnLPercent string
	PnLUp           bool
	DailyPnL        string
	WinRate         string
	Wins            int
	Losses          int
	MostTraded      string
	MostTradedCount int
	TradeCount      int
	BotActive       bool
}

type indexData struct {
	Summary      summaryView
	Rows         []Row
	Degraded     bool
	LastError    string
	Empty        bool
	PollInterval string
}

func buildRows(display []trades.Trade) []Row {
	rows := make([]Row, len(display))
	for i, t := range display {
		pnl, class := "-", "neutral"
		if t.PnL.IsPositive() {
			pnl, class = "+"+t.PnL.StringFixed(2), "positive"
		} else if t.PnL.IsNegative() {
			pnl, class = t.PnL.StringFixed(2), "negative"
		}
		rows[i] = Row{
			Timestamp: displayTime(t),
			Market:    truncate(t.Market, 40),
			Action:    t.Action,
			Price:     t.Price.StringFixed(4),
			Amount:    t.Amount.StringFixed(2),
			PnL:       pnl,
			PnLClass:  class,
			Balance:   t.Balance.StringFixed(2),
		}
	}
	return rows
}

// buildChart windows the reconstructed balance series for the chart. The
// series comes from the reconstruction, never from the raw logged field, so
// a dry-run log with all-zero balances still draws a meaningful line.
func buildChart(rec reconcile.Result, sum summary.Summary, p trades.Period, now time.Time) ChartData {
	windowed := trades.Window(rec.DisplayTrades(), p, now)

	labels := make([]string, len(windowed))
	balances := make([]float64, len(windowed))
	for i, t := range windowed {
		labels[i] = shortTime(t)
		balances[i], _ = t.Balance.Float64()
	}

	return ChartData{
		Period:   string(p),
		Labels:   labels,
		Balances: balances,
		Wins:     sum.Wins,
		Losses:   sum.Losses,
	}
}

func newSummaryView(sum summary.Summary, now time.Time) summaryView {
	sign := func(f float64) string {
		if f >= 0 {
			return "+"
		}
		return ""
	}
	return summaryView{
		Balance:         sum.Balance.StringFixed(2),
		BalanceChange:   sum.BalanceChange.StringFixed(2),
		BalancePercent:  sign(sum.BalanceChangePercent) + formatPercent(sum.BalanceChangePercent),
		BalanceUp:       sum.BalanceChange.Sign() >= 0,
		TotalPnL:        sum.TotalPnL.StringFixed(2),
		TotalPnLPercent: sign(sum.TotalPnLPercent) + formatPercent(sum.TotalPnLPercent),
		PnLUp:           sum.TotalPnL.Sign() >= 0,
		DailyPnL:        sum.DailyPnL.StringFixed(2),
		WinRate:         formatPercent1(sum.WinRate),
		Wins:            sum.Wins,
		Losses:          sum.Losses,
		MostTraded:      truncate(sum.MostTraded, 35),
		MostTradedCount: sum.MostTradedCount,
		TradeCount:      sum.TradeCount,
		BotActive:       sum.BotActive(now),
	}
}

func displayTime(t trades.Trade) string {
	if t.Time.IsZero() {
		if t.Timestamp == "" {
			return "-"
		}
		return t.Timestamp
	}
	return t.Time.UTC().Format("2006-01-02 15:04:05")
}

func shortTime(t trades.Trade) string {
	if t.Time.IsZero() {
		return "-"
	}
	return t.Time.UTC().Format("15:04:05")
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64) + "%"
}

func formatPercent1(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64) + "%"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
