package trading

import "github.com/shopspring/decimal"

// ThresholdPolicy decides the minimum profit a candidate must clear before
// a planner spends a move on it. Policies must return values >= 0 and must
// reach zero as the budget approaches its last move, so the final moves
// are never starved by over-pruning.
type ThresholdPolicy func(cash decimal.Decimal, movesRemaining, rangeDays int) decimal.Decimal

var (
	thresholdLowCash  = decimal.NewFromInt(1_000)
	thresholdHighCash = decimal.NewFromInt(10_000_000)
	thresholdCeiling  = decimal.NewFromInt(100_000)
	hundred           = decimal.NewFromInt(100)

	// Below this much remaining budget the threshold decays linearly to
	// zero, spending the tail of the budget instead of hoarding it.
	thresholdDecayMoves = int64(64)
)

// DefaultThreshold keys the minimum profit to current cash: nothing is
// required while capital is small, 1% of cash through the mid range, and a
// fixed ceiling once cash is large enough that percentage pruning would
// reject everything. The result decays to zero as the move budget empties.
func DefaultThreshold(cash decimal.Decimal, movesRemaining, rangeDays int) decimal.Decimal {
	if movesRemaining <= 1 {
		return decimal.Zero
	}

	var base decimal.Decimal
	switch {
	case cash.LessThan(thresholdLowCash):
		return decimal.Zero
	case cash.LessThanOrEqual(thresholdHighCash):
		base = cash.Div(hundred)
	default:
		base = thresholdCeiling
	}

	if remaining := int64(movesRemaining); remaining < thresholdDecayMoves {
		base = base.
			Mul(decimal.NewFromInt(remaining - 1)).
			Div(decimal.NewFromInt(thresholdDecayMoves))
	}
	return base
}

// ZeroThreshold accepts any profitable trade.
func ZeroThreshold(decimal.Decimal, int, int) decimal.Decimal {
	return decimal.Zero
}
