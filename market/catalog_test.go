package market_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/market"
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

func TestRecordValidate(t *testing.T) {
	assert := assert.New(t)

	good := record("AAA", "2005-03-01", "10.00", "12.00", "9.00", "11.00", 100)
	assert.NoError(good.Validate())

	cases := map[string]market.DayRecord{
		"empty symbol":     record("", "2005-03-01", "10", "12", "9", "11", 100),
		"zero open":        record("AAA", "2005-03-01", "0", "12", "9", "11", 100),
		"negative close":   record("AAA", "2005-03-01", "10", "12", "9", "-11", 100),
		"high below open":  record("AAA", "2005-03-01", "10", "9.50", "9", "9.20", 100),
		"high below close": record("AAA", "2005-03-01", "10", "10.50", "9", "11", 100),
		"low above open":   record("AAA", "2005-03-01", "10", "12", "10.50", "11", 100),
		"low above close":  record("AAA", "2005-03-01", "10", "12", "9.80", "9.50", 100),
		"negative volume":  record("AAA", "2005-03-01", "10", "12", "9", "11", -1),
	}
	for name, rec := range cases {
		assert.Error(rec.Validate(), name)
	}

	zeroDate := good
	zeroDate.Date = time.Time{}
	assert.Error(zeroDate.Validate())
}

func TestRecordMaxQuantity(t *testing.T) {
	assert := assert.New(t)

	rec := record("AAA", "2005-03-01", "10", "12", "9", "11", 1055)
	assert.Equal(int64(105), rec.MaxQuantity(dec("0.1")))
	assert.Equal(int64(1055), rec.MaxQuantity(dec("1")))
	assert.Equal(int64(0), rec.MaxQuantity(dec("0")))

	thin := record("AAA", "2005-03-01", "10", "12", "9", "11", 9)
	assert.Equal(int64(0), thin.MaxQuantity(dec("0.1")))
}

func TestCatalogAddAndDay(t *testing.T) {
	assert := assert.New(t)

	catalog := market.NewCatalog()
	require.NoError(t, catalog.Add(record("AAA", "2005-03-01", "10", "12", "9", "11", 100)))
	require.NoError(t, catalog.Add(record("AAA", "2005-03-02", "11", "13", "10", "12", 100)))

	rec, ok := catalog.Day("AAA", date("2005-03-01"))
	require.True(t, ok)
	assert.True(rec.Open.Equal(dec("10")))

	// lookups normalize intraday timestamps to the calendar day
	noon := time.Date(2005, time.March, 1, 12, 30, 0, 0, time.UTC)
	_, ok = catalog.Day("AAA", noon)
	assert.True(ok)

	_, ok = catalog.Day("AAA", date("2005-03-03"))
	assert.False(ok)
	_, ok = catalog.Day("BBB", date("2005-03-01"))
	assert.False(ok)

	assert.Equal(2, catalog.Len())
}

func TestCatalogRejectsInvalidAndDuplicate(t *testing.T) {
	assert := assert.New(t)

	catalog := market.NewCatalog()
	assert.Error(catalog.Add(record("AAA", "2005-03-01", "0", "12", "9", "11", 100)))

	require.NoError(t, catalog.Add(record("AAA", "2005-03-01", "10", "12", "9", "11", 100)))
	err := catalog.Add(record("AAA", "2005-03-01", "10", "12", "9", "11", 200))
	require.Error(t, err)
	assert.Contains(err.Error(), "duplicate")

	// a rejected duplicate leaves the first record in place
	rec, ok := catalog.Day("AAA", date("2005-03-01"))
	require.True(t, ok)
	assert.Equal(int64(100), rec.Volume)
}

func TestCatalogRangeOrder(t *testing.T) {
	catalog := market.NewCatalog()
	// inserted out of order on purpose
	for _, rec := range []market.DayRecord{
		record("BBB", "2005-03-02", "10", "12", "9", "11", 100),
		record("AAA", "2005-03-03", "10", "12", "9", "11", 100),
		record("AAA", "2005-03-01", "10", "12", "9", "11", 100),
		record("AAA", "2005-03-02", "10", "12", "9", "11", 100),
	} {
		require.NoError(t, catalog.Add(rec))
	}

	var visited []string
	catalog.Range(date("2005-03-01"), date("2005-03-03"), func(r *market.DayRecord) bool {
		visited = append(visited, r.Symbol+" "+r.Date.Format("2006-01-02"))
		return true
	})

	// end is exclusive; same-day records come back in symbol order
	assert.Equal(t, []string{
		"AAA 2005-03-01",
		"AAA 2005-03-02",
		"BBB 2005-03-02",
	}, visited)
}

func TestCatalogRangeEarlyStop(t *testing.T) {
	catalog := market.NewCatalog()
	require.NoError(t, catalog.Add(record("AAA", "2005-03-01", "10", "12", "9", "11", 100)))
	require.NoError(t, catalog.Add(record("AAA", "2005-03-02", "10", "12", "9", "11", 100)))

	count := 0
	catalog.Range(date("2005-03-01"), date("2005-03-10"), func(*market.DayRecord) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestCatalogBounds(t *testing.T) {
	assert := assert.New(t)

	catalog := market.NewCatalog()
	_, _, ok := catalog.Bounds()
	assert.False(ok)

	require.NoError(t, catalog.Add(record("AAA", "2005-03-05", "10", "12", "9", "11", 100)))
	require.NoError(t, catalog.Add(record("BBB", "2005-03-01", "10", "12", "9", "11", 100)))

	start, end, ok := catalog.Bounds()
	require.True(t, ok)
	assert.Equal(date("2005-03-01"), start)
	assert.Equal(date("2005-03-06"), end)
}

func TestCatalogSymbolsAndSeries(t *testing.T) {
	assert := assert.New(t)

	catalog := market.NewCatalog()
	require.NoError(t, catalog.Add(record("BBB", "2005-03-02", "10", "12", "9", "11", 100)))
	require.NoError(t, catalog.Add(record("AAA", "2005-03-03", "10", "12", "9", "11", 100)))
	require.NoError(t, catalog.Add(record("AAA", "2005-03-01", "10", "12", "9", "11", 100)))

	assert.Equal([]string{"AAA", "BBB"}, catalog.Symbols())

	s := catalog.Series("AAA")
	require.NotNil(t, s)
	require.Len(t, s.Records, 2)
	assert.Equal(date("2005-03-01"), s.Records[0].Date)
	assert.Equal(date("2005-03-03"), s.Records[1].Date)

	assert.Nil(catalog.Series("CCC"))
}
