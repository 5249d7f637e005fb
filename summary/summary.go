// Package summary aggregates a trade sequence and its reconstructed balance
// history into the statistics the dashboard cards show.
package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Millionaireguardian/polymarket-dashboard/reconcile"
	"github.com/Millionaireguardian/polymarket-dashboard/trades"
)

// botActiveWithin is how recent the newest trade must be for the bot to be
// considered actively running.
const botActiveWithin = 5 * time.Minute

// Summary holds the dashboard's headline statistics. Percentages and ratios
// are 0 for empty input or zero denominators, never NaN or Inf.
type Summary struct {
	Balance              decimal.Decimal `json:"balance"`
	BalanceChange        decimal.Decimal `json:"balanceChange"`
	BalanceChangePercent float64         `json:"balanceChangePercent"`

	TotalPnL        decimal.Decimal `json:"totalPnL"`
	TotalPnLPercent float64         `json:"totalPnLPercent"`
	DailyPnL        decimal.Decimal `json:"dailyPnL"`

	WinRate float64 `json:"winRate"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`

	MostTraded      string `json:"mostTraded"`
	MostTradedCount int    `json:"mostTradedCount"`

	TradeCount    int       `json:"tradeCount"`
	LastTradeTime time.Time `json:"lastTradeTime"`
}

// BotActive reports whether the newest trade is recent enough to assume the
// bot is still running.
func (s Summary) BotActive(now time.Time) bool {
	return !s.LastTradeTime.IsZero() && now.Sub(s.LastTradeTime) < botActiveWithin
}

// Aggregate computes the summary for a trade sequence. rec must be the
// reconstruction of the same sequence; now anchors the daily P&L bucket
// (UTC day) and is passed in rather than read from the clock so results are
// reproducible.
//
// Total P&L is the plain sum of per-trade P&L. When that sum is exactly
// zero over a non-empty set the bot was in dry-run mode, which logs no
// P&L at all, and the net balance change stands in for it.
func Aggregate(ts []trades.Trade, rec reconcile.Result, now time.Time) Summary {
	s := Summary{
		Balance:              rec.FinalBalance,
		BalanceChange:        rec.BalanceChange,
		BalanceChangePercent: rec.BalanceChangePercent,
		MostTraded:           "-",
		TradeCount:           len(ts),
	}
	if len(ts) == 0 {
		s.Balance = decimal.Decimal{}
		s.BalanceChange = decimal.Decimal{}
		s.BalanceChangePercent = 0
		return s
	}

	totalPnL := decimal.Decimal{}
	dailyPnL := decimal.Decimal{}
	today := now.UTC().Format("2006-01-02")
	for _, t := range ts {
		totalPnL = totalPnL.Add(t.PnL)
		if !t.Time.IsZero() && t.Time.UTC().Format("2006-01-02") == today {
			dailyPnL = dailyPnL.Add(t.PnL)
		}
		switch {
		case t.PnL.IsPositive():
			s.Wins++
		case t.PnL.IsNegative():
			s.Losses++
		}
	}
	if totalPnL.IsZero() {
		totalPnL = rec.BalanceChange
	}
	s.TotalPnL = totalPnL
	s.DailyPnL = dailyPnL

	if !rec.InitialBalance.IsZero() {
		s.TotalPnLPercent, _ = totalPnL.Div(rec.InitialBalance).Mul(decimal.NewFromInt(100)).Float64()
	}
	s.WinRate = float64(s.Wins) / float64(len(ts)) * 100

	s.MostTraded, s.MostTradedCount = mostTraded(ts)

	if n := len(rec.Sorted); n > 0 {
		s.LastTradeTime = rec.Sorted[n-1].Time
	}

	return s
}

// mostTraded returns the market with the highest trade count. Ties go to
// the market encountered first in input order.
func mostTraded(ts []trades.Trade) (string, int) {
	counts := make(map[string]int, len(ts))
	var order []string
	for _, t := range ts {
		if counts[t.Market] == 0 {
			order = append(order, t.Market)
		}
		counts[t.Market]++
	}

	best, bestCount := "-", 0
	for _, m := range order {
		if counts[m] > bestCount {
			best, bestCount = m, counts[m]
		}
	}
	return best, bestCount
}
