package trades

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	t.Parallel()

	tr := Normalize(nil)

	assert.Equal(t, "Unknown", tr.Market)
	assert.Equal(t, "BUY", tr.Action)
	assert.Equal(t, SideBuy, tr.Side())
	assert.Equal(t, "", tr.Timestamp)
	assert.True(t, tr.Time.IsZero())
	assert.True(t, tr.Price.IsZero())
	assert.True(t, tr.Amount.IsZero())
	assert.True(t, tr.PnL.IsZero())
	assert.True(t, tr.Balance.IsZero())
	assert.True(t, tr.InitialBalance.IsZero())
}

func TestNormalizeIsTotal(t *testing.T) {
	t.Parallel()

	// Every combination of absent/zero/negative/string-typed fields must
	// produce a value without panicking.
	cases := []map[string]any{
		{},
		{"price": "not a number", "amount": "", "pnl": nil},
		{"price": math.NaN(), "amount": math.Inf(1), "pnl": math.Inf(-1)},
		{"timestamp": 12345, "market": 7, "action": true},
		{"amount": "-3.5", "balance": "-1"},
		{"price": json.Number("abc")},
	}

	for _, raw := range cases {
		tr := Normalize(raw)
		assert.Equal(t, "BUY", tr.Action)
		assert.NotEmpty(t, tr.Market)
	}

	neg := Normalize(map[string]any{"amount": "-3.5"})
	assert.True(t, neg.Amount.Equal(decimal.NewFromFloat(-3.5)))
}

func TestNormalizeStringNumbers(t *testing.T) {
	t.Parallel()

	tr := Normalize(map[string]any{
		"price":   "0.5500",
		"amount":  "12.25",
		"pnl":     "-1.75",
		"balance": "48.25",
	})

	assert.True(t, tr.Price.Equal(decimal.NewFromFloat(0.55)))
	assert.True(t, tr.Amount.Equal(decimal.NewFromFloat(12.25)))
	assert.True(t, tr.PnL.Equal(decimal.NewFromFloat(-1.75)))
	assert.True(t, tr.Balance.Equal(decimal.NewFromFloat(48.25)))
}

func TestNormalizeActionPolicy(t *testing.T) {
	t.Parallel()

	// Only an exact "SELL" sells; the original label survives for display.
	cases := []struct {
		action string
		want   Side
	}{
		{"BUY", SideBuy},
		{"SELL", SideSell},
		{"sell", SideBuy}, // case-sensitive
		{"HOLD", SideBuy},
	}

	for _, tc := range cases {
		tr := Normalize(map[string]any{"action": tc.action})
		assert.Equal(t, tc.want, tr.Side(), "action %q", tc.action)
		assert.Equal(t, tc.action, tr.Action)
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	t.Parallel()

	tr := Normalize(map[string]any{"timestamp": "2024-06-01T12:30:00Z"})
	require.False(t, tr.Time.IsZero())
	assert.Equal(t, time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC), tr.Time.UTC())
	assert.Equal(t, "2024-06-01T12:30:00Z", tr.Timestamp)

	bad := Normalize(map[string]any{"timestamp": "yesterday-ish"})
	assert.True(t, bad.Time.IsZero())
	assert.Equal(t, "yesterday-ish", bad.Timestamp)
}

func TestDecodePayload(t *testing.T) {
	t.Parallel()

	ts := DecodePayload([]byte(`[
		{"timestamp":"2024-06-01T10:00:00Z","market":"Trump wins 2024","action":"BUY","price":"0.55","amount":10,"balance":40},
		{"timestamp":"2024-06-01T11:00:00Z","market":"Biden approval","action":"SELL","price":0.3,"amount":"5"}
	]`))

	require.Len(t, ts, 2)
	assert.Equal(t, "Trump wins 2024", ts[0].Market)
	assert.True(t, ts[0].Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, SideSell, ts[1].Side())
	assert.True(t, ts[1].Amount.Equal(decimal.NewFromInt(5)))
}

func TestDecodePayloadNotAnArray(t *testing.T) {
	t.Parallel()

	assert.Empty(t, DecodePayload([]byte(`{"trades": []}`)))
	assert.Empty(t, DecodePayload([]byte(`"hello"`)))
	assert.Empty(t, DecodePayload([]byte(`not json at all`)))
	assert.Empty(t, DecodePayload(nil))
}

func TestDecodePayloadNonObjectElement(t *testing.T) {
	t.Parallel()

	ts := DecodePayload([]byte(`[42, {"market":"X"}]`))

	require.Len(t, ts, 2)
	assert.Equal(t, "Unknown", ts[0].Market)
	assert.Equal(t, "X", ts[1].Market)
}
