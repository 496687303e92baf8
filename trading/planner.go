package trading

import "time"

// Planner plans trades over a date range, committing moves onto the
// ledger it is handed. Implementations are synchronous and single-owner:
// the ledger belongs to the active call until it returns.
type Planner interface {
	Plan(start, end time.Time, led *Ledger)
}

// GreedyPlanner repeatedly commits the single most profitable feasible
// trade in its range until the budget, the range, or profitability is
// exhausted. Because committed volume is reflected in the ledger, the same
// day can keep yielding smaller trades on later iterations.
type GreedyPlanner struct {
	scanner   *Scanner
	threshold ThresholdPolicy
}

// NewGreedyPlanner builds the naive planner. A nil policy accepts any
// profitable trade.
func NewGreedyPlanner(scanner *Scanner, policy ThresholdPolicy) *GreedyPlanner {
	if policy == nil {
		policy = ZeroThreshold
	}
	return &GreedyPlanner{scanner: scanner, threshold: policy}
}

func (p *GreedyPlanner) Plan(start, end time.Time, led *Ledger) {
	if led.Exhausted() || !start.Before(end) {
		return
	}

	cand, ok := p.scanner.FindBestTrade(start, end, led)
	if !ok || cand.Profit.Sign() <= 0 {
		return
	}
	if cand.Profit.LessThan(p.threshold(led.Cash, led.MovesRemaining, rangeDays(start, end))) {
		return
	}

	led.Commit(cand)
	// Rescan from the committed day onward: its residual volume can still
	// yield further trades, but later picks never precede it, so the
	// emitted sequence stays in non-decreasing date order.
	p.Plan(cand.Move.Date, end, led)
}

func rangeDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
