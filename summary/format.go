package summary

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Millionaireguardian/polymarket-dashboard/trades"
)

// FormatOrg renders the summary as an Org-mode block suitable for pasting
// into a trading journal. Structured facts live in a PROPERTIES drawer for
// easy search.
func FormatOrg(s Summary) string {
	var b strings.Builder
	b.WriteString("** Session Summary\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":BALANCE: %s\n", s.Balance.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":BALANCE_CHANGE: %s (%+.2f%%)\n", signedFixed(s.BalanceChange), s.BalanceChangePercent))
	b.WriteString(fmt.Sprintf(":TOTAL_PNL: %s (%+.2f%%)\n", signedFixed(s.TotalPnL), s.TotalPnLPercent))
	b.WriteString(fmt.Sprintf(":DAILY_PNL: %s\n", signedFixed(s.DailyPnL)))
	b.WriteString(fmt.Sprintf(":WIN_RATE: %.1f%% (%dW / %dL)\n", s.WinRate, s.Wins, s.Losses))
	b.WriteString(fmt.Sprintf(":MOST_TRADED: %s (%d)\n", s.MostTraded, s.MostTradedCount))
	b.WriteString(fmt.Sprintf(":TRADES: %d\n", s.TradeCount))
	if !s.LastTradeTime.IsZero() {
		b.WriteString(fmt.Sprintf(":LAST_TRADE: %s\n", s.LastTradeTime.UTC().Format(time.RFC3339)))
	}
	b.WriteString(":END:\n")
	return b.String()
}

// FormatTradesTable renders the trade sequence as an aligned text table.
// The balance column is expected to already carry reconstructed values
// (see reconcile.Result.DisplayTrades). Zero P&L renders as "-", the
// dry-run convention.
func FormatTradesTable(ts []trades.Trade) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)

	fmt.Fprintln(w, "TIMESTAMP\tMARKET\tACTION\tPRICE\tAMOUNT\tPNL\tBALANCE")
	for _, t := range ts {
		pnl := "-"
		if !t.PnL.IsZero() {
			pnl = signedFixed(t.PnL)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			displayTime(t),
			truncate(t.Market, 40),
			t.Action,
			t.Price.StringFixed(4),
			t.Amount.StringFixed(2),
			pnl,
			t.Balance.StringFixed(2),
		)
	}
	w.Flush()
	return b.String()
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

func signedFixed(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if d.Sign() >= 0 {
		return "+" + s
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
