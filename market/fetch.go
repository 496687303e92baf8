package market

import (
	"fmt"
	"math"
	"time"

	"github.com/markcheno/go-quote"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// FetchDaily downloads daily quotes for symbol covering the last dayPeriod
// days and converts them into cleaned DayRecords. Prices are rounded to
// cents the same way the persisted datasets are. Rows that fail the
// DayRecord invariants are dropped with a warning rather than failing the
// whole fetch.
func FetchDaily(symbol string, dayPeriod int) ([]DayRecord, error) {
	endDay := time.Now()
	startDay := endDay.AddDate(0, 0, -dayPeriod)

	q, err := quote.NewQuoteFromYahoo(
		symbol, startDay.Format(dateFormat), endDay.Format(dateFormat), quote.Daily, true)
	if err != nil {
		return nil, fmt.Errorf("quote download for %s: %w", symbol, err)
	}
	if len(q.Date) == 0 {
		return nil, fmt.Errorf("no quotes returned for %s", symbol)
	}

	records := make([]DayRecord, 0, len(q.Date))
	for i := range q.Date {
		rec := DayRecord{
			Symbol: symbol,
			Date:   Midnight(q.Date[i]),
			Open:   cents(q.Open[i]),
			High:   cents(q.High[i]),
			Low:    cents(q.Low[i]),
			Close:  cents(q.Close[i]),
			Volume: int64(q.Volume[i]),
		}
		if err := rec.Validate(); err != nil {
			logrus.Warnf("fetched quote dropped: %v", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(math.Round(v*100) / 100)
}
