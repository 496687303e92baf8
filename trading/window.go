package trading

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/market"
)

// Window is one contiguous [Start, End) planning unit.
type Window struct {
	Start time.Time
	End   time.Time
}

// Partition splits [start, end) into consecutive calendar-year or
// calendar-month windows. The first and last windows are clipped to the
// requested span.
func Partition(start, end time.Time, g Granularity) []Window {
	start, end = market.Midnight(start), market.Midnight(end)

	var windows []Window
	cur := start
	for cur.Before(end) {
		var next time.Time
		if g == GranularityYear {
			next = time.Date(cur.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
		} else {
			next = time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		}
		if next.After(end) {
			next = end
		}
		windows = append(windows, Window{Start: cur, End: next})
		cur = next
	}
	return windows
}

// BalancePoint is the cash balance at the end of one calendar year,
// recorded for reporting.
type BalancePoint struct {
	Year int
	Cash decimal.Decimal
}

// Windower partitions the catalog's full date span and invokes one planner
// per window in chronological order. The single shared ledger carries cash
// and the move budget across windows; per-day volume accounting is reset
// at each boundary since days never repeat. Planning stops as soon as the
// budget is exhausted.
type Windower struct {
	Planner Planner
	Window  Granularity
}

// Run plans the whole catalog span window by window and returns the
// end-of-year balance history.
func (w *Windower) Run(catalog *market.Catalog, led *Ledger) []BalancePoint {
	start, end, ok := catalog.Bounds()
	if !ok {
		return nil
	}

	var points []BalancePoint
	record := func(year int) {
		if n := len(points); n > 0 && points[n-1].Year == year {
			points[n-1].Cash = led.Cash
			return
		}
		points = append(points, BalancePoint{Year: year, Cash: led.Cash})
	}

	for _, win := range Partition(start, end, w.Window) {
		if led.Exhausted() {
			logrus.Infof("move budget exhausted, skipping remaining windows from %s",
				win.Start.Format("2006-01-02"))
			break
		}
		w.Planner.Plan(win.Start, win.End, led)
		led.ResetVolume()
		record(win.Start.Year())
	}
	return points
}

// RunScenario wires a scenario end to end: fresh ledger, scanner, the
// scenario's planner, and the windowing engine. Returns the final ledger
// and the balance history.
func RunScenario(catalog *market.Catalog, scn Scenario) (*Ledger, []BalancePoint, error) {
	if err := scn.Validate(); err != nil {
		return nil, nil, err
	}

	led := NewLedger(scn.InitialCash, scn.MoveLimit)
	scanner := NewScanner(catalog, scn)

	var planner Planner
	switch scn.Strategy {
	case StrategyLookback:
		planner = NewLookbackPlanner(scanner, DefaultThreshold)
	default:
		planner = NewGreedyPlanner(scanner, ZeroThreshold)
	}

	logrus.Infof("scenario %s: strategy=%s window=%s limit=%d cash=%s",
		scn.Name, scn.Strategy, scn.Window, scn.MoveLimit, scn.InitialCash)

	windower := &Windower{Planner: planner, Window: scn.Window}
	points := windower.Run(catalog, led)

	logrus.Infof("scenario %s finished: %d moves, final cash %s",
		scn.Name, len(led.Moves), led.Cash)
	return led, points, nil
}
