package trading

import (
	"time"

	"github.com/shopspring/decimal"
)

type volumeKey struct {
	symbol string
	day    int64
}

// Ledger is the single mutable state of a planning run: cash, per-day
// consumed volume, the remaining move budget, and the emitted move
// sequence. Exactly one ledger is threaded through a run; planners own it
// exclusively for the duration of their call.
type Ledger struct {
	Cash           decimal.Decimal
	MovesRemaining int
	Moves          []Move

	volumeUsed map[volumeKey]int64
}

// NewLedger returns a fresh ledger with the scenario's starting cash and
// move budget.
func NewLedger(cash decimal.Decimal, moveLimit int) *Ledger {
	return &Ledger{
		Cash:           cash,
		MovesRemaining: moveLimit,
		volumeUsed:     map[volumeKey]int64{},
	}
}

// Exhausted reports whether the move budget has run out, the run's only
// cancellation signal.
func (l *Ledger) Exhausted() bool {
	return l.MovesRemaining == 0
}

// VolumeUsed is the share count already consumed on (symbol, date) by
// committed moves.
func (l *Ledger) VolumeUsed(symbol string, date time.Time) int64 {
	return l.volumeUsed[volumeKey{symbol: symbol, day: date.Unix()}]
}

// ResetVolume clears the per-day volume accounting. Safe at window
// boundaries: days never repeat across windows.
func (l *Ledger) ResetVolume() {
	l.volumeUsed = map[volumeKey]int64{}
}

// Commit executes a scanned candidate: deducts the buy cost, credits the
// net sell proceeds, records the consumed volume, appends the move, and
// spends one unit of budget. Callers must only commit feasible candidates.
func (l *Ledger) Commit(c Candidate) {
	m := c.Move
	l.Cash = l.Cash.Sub(m.Cost()).Add(m.Proceeds())
	l.volumeUsed[volumeKey{symbol: m.Symbol, day: m.Date.Unix()}] += m.Shares
	l.Moves = append(l.Moves, m)
	l.MovesRemaining--
}
