package trades

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTrade(ts string, market string, amount float64) Trade {
	return Normalize(map[string]any{
		"timestamp": ts,
		"market":    market,
		"amount":    amount,
	})
}

func TestSearchCaseInsensitive(t *testing.T) {
	t.Parallel()

	ts := []Trade{
		mkTrade("2024-06-01T10:00:00Z", "Trump wins 2024", 1),
		mkTrade("2024-06-01T11:00:00Z", "Biden approval", 2),
		mkTrade("2024-06-01T12:00:00Z", "TRUMP popular vote", 3),
	}

	got := Search(ts, "trump")
	require.Len(t, got, 2)
	assert.Equal(t, "Trump wins 2024", got[0].Market)
	assert.Equal(t, "TRUMP popular vote", got[1].Market)

	assert.Len(t, Search(ts, ""), 3)
	assert.Empty(t, Search(ts, "nothing matches this"))
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	ts := []Trade{mkTrade("2024-06-01T10:00:00Z", "A", 1)}
	got := Search(ts, "")
	got[0].Market = "changed"
	assert.Equal(t, "A", ts[0].Market)
}

func TestSortByColumns(t *testing.T) {
	t.Parallel()

	a := Normalize(map[string]any{"timestamp": "2024-06-02T10:00:00Z", "market": "beta", "action": "SELL", "price": 0.7, "amount": 5, "pnl": -1, "balance": 10})
	b := Normalize(map[string]any{"timestamp": "2024-06-01T10:00:00Z", "market": "Alpha", "action": "BUY", "price": 0.2, "amount": 20, "pnl": 3, "balance": 30})
	ts := []Trade{a, b}

	byTime := SortBy(ts, ColTimestamp, true)
	assert.Equal(t, "Alpha", byTime[0].Market)

	byMarket := SortBy(ts, ColMarket, true) // case-insensitive compare
	assert.Equal(t, "Alpha", byMarket[0].Market)

	byPrice := SortBy(ts, ColPrice, false)
	assert.True(t, byPrice[0].Price.Equal(decimal.NewFromFloat(0.7)))

	byPnL := SortBy(ts, ColPnL, true)
	assert.True(t, byPnL[0].PnL.Equal(decimal.NewFromInt(-1)))

	byAmount := SortBy(ts, ColAmount, true)
	assert.True(t, byAmount[0].Amount.Equal(decimal.NewFromInt(5)))

	byBalance := SortBy(ts, ColBalance, false)
	assert.True(t, byBalance[0].Balance.Equal(decimal.NewFromInt(30)))

	byAction := SortBy(ts, ColAction, true)
	assert.Equal(t, "BUY", byAction[0].Action)
}

func TestSortStabilityOnDuplicateTimestamps(t *testing.T) {
	t.Parallel()

	ts := []Trade{
		mkTrade("2024-06-01T10:00:00Z", "first", 1),
		mkTrade("2024-06-01T10:00:00Z", "second", 2),
		mkTrade("2024-06-01T10:00:00Z", "third", 3),
	}

	for _, asc := range []bool{true, false} {
		got := SortBy(ts, ColTimestamp, asc)
		assert.Equal(t, "first", got[0].Market)
		assert.Equal(t, "second", got[1].Market)
		assert.Equal(t, "third", got[2].Market)
	}
}

func TestSortByTimeMissingTimestampsFirst(t *testing.T) {
	t.Parallel()

	ts := []Trade{
		mkTrade("2024-06-01T10:00:00Z", "dated", 1),
		mkTrade("", "undated", 2),
	}

	got := SortByTime(ts)
	assert.Equal(t, "undated", got[0].Market)
	assert.Equal(t, "dated", got[1].Market)
}

func TestParseColumn(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"timestamp", "market", "action", "price", "amount", "pnl", "balance"} {
		col, ok := ParseColumn(s)
		assert.True(t, ok)
		assert.Equal(t, Column(s), col)
	}

	_, ok := ParseColumn("bogus")
	assert.False(t, ok)
}

func TestWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	ts := []Trade{
		mkTrade(now.Add(-time.Hour).Format(time.RFC3339), "recent", 1),
		mkTrade(now.Add(-30*time.Hour).Format(time.RFC3339), "this week", 2),
		mkTrade(now.AddDate(0, 0, -8).Format(time.RFC3339), "old", 3),
		mkTrade("", "undated", 4),
	}

	assert.Len(t, Window(ts, PeriodAll, now), 4)

	day := Window(ts, Period24h, now)
	require.Len(t, day, 1)
	assert.Equal(t, "recent", day[0].Market)

	week := Window(ts, Period7d, now)
	require.Len(t, week, 2)
	assert.Equal(t, "recent", week[0].Market)
	assert.Equal(t, "this week", week[1].Market)
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Period24h, ParsePeriod("24h"))
	assert.Equal(t, Period7d, ParsePeriod("7d"))
	assert.Equal(t, PeriodAll, ParsePeriod("all"))
	assert.Equal(t, PeriodAll, ParsePeriod(""))
	assert.Equal(t, PeriodAll, ParsePeriod("1y"))
}
