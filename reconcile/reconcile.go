// Package reconcile rebuilds a consistent running balance from the bot's
// trade log. The log's balance field is unreliable: dry-run sessions write
// zeros, crashed sessions leave gaps, and the occasional corrupt entry is
// wildly off. Reconstruction therefore walks the trades forward from a
// resolved initial balance and only trusts a logged balance when it is
// plausibly close to the computed one.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/Millionaireguardian/polymarket-dashboard/trades"
)

// Options carries the two reconciliation constants. Both default to values
// inherited from the bot's own accounting and are configurable because
// neither has a documented business rationale.
type Options struct {
	// DefaultInitialBalance seeds the walk when no trade reveals the
	// starting balance. Units of the account currency.
	DefaultInitialBalance decimal.Decimal

	// SnapTolerance is the absolute distance within which a positive
	// logged balance overrides the computed running balance.
	SnapTolerance decimal.Decimal
}

// DefaultOptions returns the documented defaults: initial balance 50,
// snap tolerance 100.
func DefaultOptions() Options {
	return Options{
		DefaultInitialBalance: decimal.NewFromInt(50),
		SnapTolerance:         decimal.NewFromInt(100),
	}
}

// Result is the reconstructed balance history.
type Result struct {
	InitialBalance       decimal.Decimal
	FinalBalance         decimal.Decimal
	BalanceChange        decimal.Decimal
	BalanceChangePercent float64

	// Sorted is the stable timestamp-ascending copy of the input the walk
	// ran over; Balances is index-aligned with it, one reconstructed
	// post-trade balance per trade.
	Sorted   []trades.Trade
	Balances []decimal.Decimal
}

// Reconstruct derives the balance history for a trade sequence. Input order
// is irrelevant: a copy is stably re-sorted by timestamp first, so ties and
// unparseable timestamps keep their relative input order.
//
// The initial balance is resolved once, in precedence order: the first
// trade's initialBalance field when positive; otherwise the first trade's
// positive logged balance with that trade's effect backed out; otherwise
// opts.DefaultInitialBalance. The walk then applies each trade's delta
// (BUY subtracts amount, SELL adds, unknown actions buy) and snaps to the
// logged balance when it is positive and within opts.SnapTolerance of the
// computed value. A positive logged balance on the final trade wins
// outright: the most recent authoritative figure beats the reconstruction.
func Reconstruct(ts []trades.Trade, opts Options) Result {
	sorted := trades.SortByTime(ts)

	initial := opts.DefaultInitialBalance
	if len(sorted) > 0 {
		first := sorted[0]
		switch {
		case first.InitialBalance.IsPositive():
			initial = first.InitialBalance
		case first.Balance.IsPositive():
			initial = first.Balance.Add(first.Amount)
		}
	}

	running := initial
	balances := make([]decimal.Decimal, len(sorted))
	for i, t := range sorted {
		if t.Side() == trades.SideSell {
			running = running.Add(t.Amount)
		} else {
			running = running.Sub(t.Amount)
		}
		if t.Balance.IsPositive() && t.Balance.Sub(running).Abs().LessThan(opts.SnapTolerance) {
			running = t.Balance
		}
		balances[i] = running
	}

	final := running
	if len(sorted) > 0 {
		if last := sorted[len(sorted)-1].Balance; last.IsPositive() {
			final = last
		}
	}

	change := final.Sub(initial)
	percent := 0.0
	if !initial.IsZero() {
		percent, _ = change.Div(initial).Mul(decimal.NewFromInt(100)).Float64()
	}

	return Result{
		InitialBalance:       initial,
		FinalBalance:         final,
		BalanceChange:        change,
		BalanceChangePercent: percent,
		Sorted:               sorted,
		Balances:             balances,
	}
}

// DisplayTrades returns a copy of the sorted trades with each balance field
// replaced by the reconstructed value. This is the sequence the table and
// chart consume; the original records stay untouched.
func (r Result) DisplayTrades() []trades.Trade {
	out := append([]trades.Trade(nil), r.Sorted...)
	for i := range out {
		out[i].Balance = r.Balances[i]
	}
	return out
}
