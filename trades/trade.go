// Package trades defines the normalized trade record consumed by the
// dashboard and the query helpers (search, sort, time window) the
// presentation layer works with.
package trades

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the balance direction of a trade.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	if s == SideSell {
		return "SELL"
	}
	return "BUY"
}

// Trade is one normalized record from the bot's trade log. The bot writes
// these records with best effort: numeric fields may arrive as strings,
// be missing entirely, or be zero, so every field here carries a defined
// fallback (see Normalize). A Trade is never mutated after normalization;
// derived values such as the reconstructed balance are computed on copies.
type Trade struct {
	// Timestamp is the label as logged, kept verbatim for display.
	// Time is the parsed form; it is the zero value when the label is
	// absent or unparseable, and such trades sort before all others.
	Timestamp string
	Time      time.Time

	Market string // "Unknown" when the log omitted it
	Action string // original label when present, else "BUY"

	Price          decimal.Decimal
	Amount         decimal.Decimal
	PnL            decimal.Decimal
	Balance        decimal.Decimal // post-trade balance as logged, zero when absent
	InitialBalance decimal.Decimal // only meaningful on the earliest record
}

// Side returns the balance direction for the trade. Only an exact "SELL"
// label sells; every other label, including absent ones, buys. This is the
// single fallback policy for unknown actions and is applied everywhere a
// direction matters.
func (t Trade) Side() Side {
	if t.Action == "SELL" {
		return SideSell
	}
	return SideBuy
}
