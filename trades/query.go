package trades

import (
	"sort"
	"strings"
	"time"
)

// Column identifies a sortable table column.
type Column string

const (
	ColTimestamp Column = "timestamp"
	ColMarket    Column = "market"
	ColAction    Column = "action"
	ColPrice     Column = "price"
	ColAmount    Column = "amount"
	ColPnL       Column = "pnl"
	ColBalance   Column = "balance"
)

// ParseColumn maps a query-string value to a Column.
func ParseColumn(s string) (Column, bool) {
	switch Column(s) {
	case ColTimestamp, ColMarket, ColAction, ColPrice, ColAmount, ColPnL, ColBalance:
		return Column(s), true
	}
	return "", false
}

// Period selects a time window of the trade sequence.
type Period string

const (
	PeriodAll Period = "all"
	Period24h Period = "24h"
	Period7d  Period = "7d"
)

// ParsePeriod maps a query-string value to a Period, defaulting to all.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case Period24h, Period7d:
		return Period(s)
	}
	return PeriodAll
}

// Search returns the trades whose market contains query as a
// case-insensitive substring. An empty query matches everything. The input
// slice is not modified and relative order is preserved.
func Search(ts []Trade, query string) []Trade {
	if query == "" {
		return append([]Trade(nil), ts...)
	}
	q := strings.ToLower(query)
	out := make([]Trade, 0, len(ts))
	for _, t := range ts {
		if strings.Contains(strings.ToLower(t.Market), q) {
			out = append(out, t)
		}
	}
	return out
}

// SortBy returns a copy of ts stably sorted on the given column. Equal keys
// keep their current relative order in both directions, so duplicate
// timestamps never shuffle.
func SortBy(ts []Trade, col Column, asc bool) []Trade {
	out := append([]Trade(nil), ts...)
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], col)
		if asc {
			return c < 0
		}
		return c > 0
	})
	return out
}

// SortByTime returns a copy of ts stably sorted ascending by timestamp.
// Trades without a parseable timestamp sort first, in input order. This is
// the ordering the balance reconstruction walks.
func SortByTime(ts []Trade) []Trade {
	return SortBy(ts, ColTimestamp, true)
}

// Window returns the subsequence of ts whose timestamp falls within the
// period ending at now. PeriodAll returns a copy of everything; trades
// without a parseable timestamp fall outside any bounded window.
func Window(ts []Trade, p Period, now time.Time) []Trade {
	var cutoff time.Time
	switch p {
	case Period24h:
		cutoff = now.Add(-24 * time.Hour)
	case Period7d:
		cutoff = now.AddDate(0, 0, -7)
	default:
		return append([]Trade(nil), ts...)
	}

	out := make([]Trade, 0, len(ts))
	for _, t := range ts {
		if !t.Time.IsZero() && !t.Time.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

func compare(a, b Trade, col Column) int {
	switch col {
	case ColMarket:
		return strings.Compare(strings.ToLower(a.Market), strings.ToLower(b.Market))
	case ColAction:
		return strings.Compare(a.Action, b.Action)
	case ColPrice:
		return a.Price.Cmp(b.Price)
	case ColAmount:
		return a.Amount.Cmp(b.Amount)
	case ColPnL:
		return a.PnL.Cmp(b.PnL)
	case ColBalance:
		return a.Balance.Cmp(b.Balance)
	default: // ColTimestamp
		switch {
		case a.Time.Before(b.Time):
			return -1
		case a.Time.After(b.Time):
			return 1
		}
		return 0
	}
}
