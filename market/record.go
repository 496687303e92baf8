package market

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DayRecord is one cleaned daily OHLCV bar for a single stock.
// Records are immutable once loaded into a Catalog.
type DayRecord struct {
	Symbol string
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// Validate checks the basic price/volume invariants every record must hold
// before it is allowed into a Catalog.
func (r *DayRecord) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("record has empty symbol")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%s: record has zero date", r.Symbol)
	}
	for _, p := range []struct {
		name  string
		price decimal.Decimal
	}{
		{"open", r.Open}, {"high", r.High}, {"low", r.Low}, {"close", r.Close},
	} {
		if p.price.Sign() <= 0 {
			return fmt.Errorf("%s %s: non-positive %s price %s",
				r.Symbol, r.Date.Format(dateFormat), p.name, p.price)
		}
	}
	if r.High.LessThan(r.Open) || r.High.LessThan(r.Close) {
		return fmt.Errorf("%s %s: high %s below open/close",
			r.Symbol, r.Date.Format(dateFormat), r.High)
	}
	if r.Low.GreaterThan(r.Open) || r.Low.GreaterThan(r.Close) {
		return fmt.Errorf("%s %s: low %s above open/close",
			r.Symbol, r.Date.Format(dateFormat), r.Low)
	}
	if r.Volume < 0 {
		return fmt.Errorf("%s %s: negative volume %d",
			r.Symbol, r.Date.Format(dateFormat), r.Volume)
	}
	return nil
}

// MaxQuantity is the largest share count tradable on this day under the
// given volume-cap fraction, cumulatively across all moves on the day.
func (r *DayRecord) MaxQuantity(capFraction decimal.Decimal) int64 {
	return capFraction.Mul(decimal.NewFromInt(r.Volume)).Floor().IntPart()
}

// PriceRange is High-Low, used by the loader's outlier filter.
func (r *DayRecord) PriceRange() decimal.Decimal {
	return r.High.Sub(r.Low)
}

const dateFormat = "2006-01-02"

// Midnight normalizes a timestamp to its UTC calendar day. All Catalog
// lookups key on midnight dates.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
