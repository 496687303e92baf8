package trading

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/market"
)

// ViolationKind classifies the first constraint a move sequence broke.
type ViolationKind string

const (
	ViolationMoveLimit     ViolationKind = "move-limit"
	ViolationOutOfOrder    ViolationKind = "out-of-order"
	ViolationUnknownDay    ViolationKind = "unknown-day"
	ViolationPriceMismatch ViolationKind = "price-mismatch"
	ViolationBadShares     ViolationKind = "bad-shares"
	ViolationVolumeCap     ViolationKind = "volume-cap"
	ViolationNegativeCash  ViolationKind = "negative-cash"
)

// Violation pinpoints the first illegal step in a replayed move sequence.
type Violation struct {
	Kind   ViolationKind
	Index  int
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s at move %d: %s", v.Kind, v.Index, v.Detail)
}

// Report is the outcome of a validation replay: pass/fail, the first
// violation found, and the independently recomputed final cash.
type Report struct {
	OK        bool
	Violation *Violation
	FinalCash decimal.Decimal
}

// Validate replays moves in the given order against a fresh zero-state
// ledger, recomputing cash and volume usage from each move's recorded
// prices, and fails fast on the first broken constraint. It never mutates
// the sequence it checks.
func Validate(moves []Move, catalog *market.Catalog, scn Scenario) Report {
	fail := func(kind ViolationKind, index int, format string, args ...any) Report {
		return Report{Violation: &Violation{
			Kind:   kind,
			Index:  index,
			Detail: fmt.Sprintf(format, args...),
		}}
	}

	if len(moves) > scn.MoveLimit {
		return fail(ViolationMoveLimit, scn.MoveLimit,
			"%d moves exceed limit %d", len(moves), scn.MoveLimit)
	}

	cash := scn.InitialCash
	used := map[volumeKey]int64{}
	var last time.Time

	for i, m := range moves {
		if i > 0 && m.Date.Before(last) {
			return fail(ViolationOutOfOrder, i,
				"date %s precedes %s", m.Date.Format("2006-01-02"), last.Format("2006-01-02"))
		}
		last = m.Date

		rec, ok := catalog.Day(m.Symbol, m.Date)
		if !ok {
			return fail(ViolationUnknownDay, i,
				"no record for %s on %s", m.Symbol, m.Date.Format("2006-01-02"))
		}

		buy, sell := rec.Open, rec.High
		if m.Kind == BuyLowSellClose {
			buy, sell = rec.Low, rec.Close
		}
		if !m.BuyPrice.Equal(buy) || !m.SellPrice.Equal(sell) {
			return fail(ViolationPriceMismatch, i,
				"recorded %s/%s, source %s/%s", m.BuyPrice, m.SellPrice, buy, sell)
		}
		if !m.FeeRate.Equal(scn.FeeRate) {
			return fail(ViolationPriceMismatch, i,
				"recorded fee %s, scenario fee %s", m.FeeRate, scn.FeeRate)
		}
		if m.Shares < 1 {
			return fail(ViolationBadShares, i, "non-positive share count %d", m.Shares)
		}

		key := volumeKey{symbol: m.Symbol, day: m.Date.Unix()}
		if total, dayCap := used[key]+m.Shares, rec.MaxQuantity(scn.VolumeCap); total > dayCap {
			return fail(ViolationVolumeCap, i,
				"%d cumulative shares exceed day cap %d", total, dayCap)
		}
		used[key] += m.Shares

		cash = cash.Sub(m.Cost())
		if cash.Sign() < 0 {
			return fail(ViolationNegativeCash, i, "cash %s after buy leg", cash)
		}
		cash = cash.Add(m.Proceeds())
	}

	return Report{OK: true, FinalCash: cash}
}
