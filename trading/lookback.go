package trading

import "time"

// LookbackPlanner is the corrective variant of the greedy planner. Before
// committing the scanner's chosen trade it plans the sub-range strictly
// before that trade's date with cash already reduced by the pending buy
// cost, filling gaps the forward pass would have skipped, then commits the
// trade and plans the sub-range after it. The divide-and-conquer order
// means the emitted move sequence is in non-decreasing date order by
// construction.
type LookbackPlanner struct {
	scanner   *Scanner
	threshold ThresholdPolicy
}

// NewLookbackPlanner builds the corrective planner. A nil policy accepts
// any profitable trade.
func NewLookbackPlanner(scanner *Scanner, policy ThresholdPolicy) *LookbackPlanner {
	if policy == nil {
		policy = ZeroThreshold
	}
	return &LookbackPlanner{scanner: scanner, threshold: policy}
}

func (p *LookbackPlanner) Plan(start, end time.Time, led *Ledger) {
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

	day := cand.Move.Date
	cost := cand.Move.Cost()

	// Look back into [start, day) as if the chosen trade were already
	// bought but not yet sold: its cost is borrowed out of the cash the
	// look-back may spend. Budget and volume accounting are shared, not a
	// separate allowance.
	if day.After(start) {
		led.Cash = led.Cash.Sub(cost)
		p.Plan(start, day, led)
		led.Cash = led.Cash.Add(cost)
	}

	// The look-back may have spent the remaining budget.
	if led.Exhausted() {
		return
	}
	led.Commit(cand)

	p.Plan(day.AddDate(0, 0, 1), end, led)
}
