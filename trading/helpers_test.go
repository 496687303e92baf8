package trading_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/market"
	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/trading"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func record(symbol, day, open, high, low, close string, volume int64) market.DayRecord {
	return market.DayRecord{
		Symbol: symbol,
		Date:   date(day),
		Open:   dec(open),
		High:   dec(high),
		Low:    dec(low),
		Close:  dec(close),
		Volume: volume,
	}
}

func catalogOf(t *testing.T, records ...market.DayRecord) *market.Catalog {
	t.Helper()
	catalog := market.NewCatalog()
	for _, rec := range records {
		require.NoError(t, catalog.Add(rec))
	}
	return catalog
}

// testScenario is the literal setup from the planner's reference example:
// $100 starting cash, 1% fee per leg, 10% volume cap.
func testScenario(limit int) trading.Scenario {
	return trading.Scenario{
		Name:        "test",
		InitialCash: dec("100"),
		FeeRate:     dec("0.01"),
		VolumeCap:   dec("0.1"),
		MoveLimit:   limit,
		Window:      trading.GranularityYear,
		Strategy:    trading.StrategyGreedy,
	}
}
