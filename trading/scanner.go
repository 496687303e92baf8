package trading

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/market"
)

// Candidate is one feasible trade found by the scanner, with its total
// profit for the executable share count.
type Candidate struct {
	Move   Move
	Profit decimal.Decimal
}

// Scanner finds the single best legal intraday trade in a date range given
// the current ledger state. It is a pure query: it never mutates the
// ledger.
type Scanner struct {
	catalog *market.Catalog
	scn     Scenario
}

// NewScanner builds a scanner over catalog for one scenario's fee and
// volume-cap parameters.
func NewScanner(catalog *market.Catalog, scn Scenario) *Scanner {
	return &Scanner{catalog: catalog, scn: scn}
}

// FindBestTrade scans every stock and day in [start, end) for both trade
// kinds and returns the feasible candidate with maximum profit. Ties break
// to the earliest date, then the lowest symbol, which the ascending
// (date, symbol) catalog order provides for free. Returns false when the
// budget is exhausted or nothing is feasible.
func (s *Scanner) FindBestTrade(start, end time.Time, led *Ledger) (Candidate, bool) {
	if led.Exhausted() {
		return Candidate{}, false
	}

	var best Candidate
	found := false
	s.catalog.Range(start, end, func(rec *market.DayRecord) bool {
		for _, kind := range []Kind{BuyOpenSellHigh, BuyLowSellClose} {
			cand, ok := s.evaluate(rec, kind, led)
			if !ok {
				continue
			}
			if !found || cand.Profit.GreaterThan(best.Profit) {
				best = cand
				found = true
			}
		}
		return true
	})
	return best, found
}

// evaluate sizes a trade of the given kind on one day. Share count is the
// lesser of what cash affords (fee included) and what the day's remaining
// volume cap allows; fewer than one share means infeasible.
func (s *Scanner) evaluate(rec *market.DayRecord, kind Kind, led *Ledger) (Candidate, bool) {
	var buy, sell decimal.Decimal
	switch kind {
	case BuyOpenSellHigh:
		buy, sell = rec.Open, rec.High
	case BuyLowSellClose:
		buy, sell = rec.Low, rec.Close
	}

	unitCost := buy.Mul(s.scn.buyFactor())
	byCash := led.Cash.Div(unitCost).Floor().IntPart()
	// Div rounds at DivisionPrecision; step down if that rounded up past
	// what cash actually covers.
	for byCash > 0 && unitCost.Mul(decimal.NewFromInt(byCash)).GreaterThan(led.Cash) {
		byCash--
	}

	byVolume := rec.MaxQuantity(s.scn.VolumeCap) - led.VolumeUsed(rec.Symbol, rec.Date)
	shares := byCash
	if byVolume < shares {
		shares = byVolume
	}
	if shares < 1 {
		return Candidate{}, false
	}

	m := Move{
		Symbol:    rec.Symbol,
		Date:      rec.Date,
		Kind:      kind,
		Shares:    shares,
		BuyPrice:  buy,
		SellPrice: sell,
		FeeRate:   s.scn.FeeRate,
	}
	return Candidate{Move: m, Profit: m.Profit()}, true
}
