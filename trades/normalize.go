package trades

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// timeLayouts are tried in order when parsing a timestamp label. The bot
// logs RFC3339, but older logs used a space separator and some dry-run
// entries carry a bare date.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts one raw record into a Trade. It is total: any
// combination of absent, zero, negative, or string-typed fields produces a
// value, never an error or a panic. A nil map yields a fully defaulted
// record.
func Normalize(raw map[string]any) Trade {
	t := Trade{
		Timestamp:      asString(raw["timestamp"]),
		Market:         asString(raw["market"]),
		Action:         asString(raw["action"]),
		Price:          asDecimal(raw["price"]),
		Amount:         asDecimal(raw["amount"]),
		PnL:            asDecimal(raw["pnl"]),
		Balance:        asDecimal(raw["balance"]),
		InitialBalance: asDecimal(raw["initialBalance"]),
	}

	if t.Market == "" {
		t.Market = "Unknown"
	}
	if t.Action == "" {
		t.Action = "BUY"
	}
	t.Time = parseTime(t.Timestamp)

	return t
}

// DecodePayload parses the trade log payload. A payload that is not a JSON
// array is treated as an empty trade set; an element that is not an object
// becomes a fully defaulted record. Malformed records never surface as
// errors past this point.
func DecodePayload(data []byte) []Trade {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil
	}
	arr, ok := payload.([]any)
	if !ok {
		return nil
	}

	out := make([]Trade, 0, len(arr))
	for _, el := range arr {
		obj, _ := el.(map[string]any)
		out = append(out, Normalize(obj))
	}
	return out
}

func parseTime(label string) time.Time {
	if label == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, label); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asDecimal coerces a decoded JSON value to a decimal, falling back to zero
// for anything that is not a finite number or a parseable numeric string.
func asDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	case float64:
		if !math.IsNaN(n) && !math.IsInf(n, 0) {
			return decimal.NewFromFloat(n)
		}
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	}
	return decimal.Decimal{}
}
