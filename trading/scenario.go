package trading

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Strategy names the planner a scenario runs.
type Strategy string

const (
	// StrategyGreedy is the naive forward greedy planner.
	StrategyGreedy Strategy = "greedy"
	// StrategyLookback is the corrective look-back planner.
	StrategyLookback Strategy = "lookback"
)

// Granularity is the windowing step of a scenario.
type Granularity string

const (
	GranularityYear  Granularity = "year"
	GranularityMonth Granularity = "month"
)

// Scenario is the immutable configuration bundle for one planning run.
type Scenario struct {
	Name        string
	InitialCash decimal.Decimal
	FeeRate     decimal.Decimal
	VolumeCap   decimal.Decimal
	MoveLimit   int
	Window      Granularity
	Strategy    Strategy
}

// Validate rejects malformed configuration before any planning starts.
func (s Scenario) Validate() error {
	if s.InitialCash.Sign() <= 0 {
		return fmt.Errorf("scenario %s: non-positive initial cash %s", s.Name, s.InitialCash)
	}
	if s.FeeRate.Sign() < 0 || s.FeeRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("scenario %s: fee rate %s outside [0,1)", s.Name, s.FeeRate)
	}
	if s.VolumeCap.Sign() <= 0 || s.VolumeCap.GreaterThan(one) {
		return fmt.Errorf("scenario %s: volume cap %s outside (0,1]", s.Name, s.VolumeCap)
	}
	if s.MoveLimit <= 0 {
		return fmt.Errorf("scenario %s: non-positive move limit %d", s.Name, s.MoveLimit)
	}
	switch s.Window {
	case GranularityYear, GranularityMonth:
	default:
		return fmt.Errorf("scenario %s: unknown window granularity %q", s.Name, s.Window)
	}
	switch s.Strategy {
	case StrategyGreedy, StrategyLookback:
	default:
		return fmt.Errorf("scenario %s: unknown strategy %q", s.Name, s.Strategy)
	}
	return nil
}

// buyFactor is the cost multiplier of a buy leg (1 + fee).
func (s Scenario) buyFactor() decimal.Decimal {
	return one.Add(s.FeeRate)
}
