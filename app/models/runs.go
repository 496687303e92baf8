package models

import (
	"sort"
	"time"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/trading"
)

// Run is one finished planning run: scenario identity, the resulting
// balance, and the validator's verdict. Also used as json.
type Run struct {
	ID         int    `gorm:"primary_key" json:"id"`
	Scenario   string `json:"scenario"`
	StartedAt  int64  `json:"started_at"`
	FinishedAt int64  `json:"finished_at"`
	FinalCash  string `json:"final_cash"`
	MoveCount  int    `json:"move_count"`
	Valid      bool   `json:"valid"`
}

// MoveRow is one committed move of a run, flattened for storage. Time is
// Unixtime in milliseconds for frontend use.
type MoveRow struct {
	ID        int    `gorm:"primary_key" json:"-"`
	RunID     int    `gorm:"index" json:"-"`
	Time      int64  `json:"time"`
	Symbol    string `json:"symbol"`
	BuyAction string `json:"buy_action"`
	Shares    int64  `json:"shares"`
	BuyPrice  string `json:"buy_price"`
	SellPrice string `json:"sell_price"`
}

// MoveRows is slice of MoveRow
type MoveRows []MoveRow

// NewRunFromLedger builds the Run row for a finished ledger(used as constructor)
func NewRunFromLedger(scenario string, started time.Time, led *trading.Ledger, valid bool) *Run {
	return &Run{
		Scenario:   scenario,
		StartedAt:  started.Unix() * 1000,
		FinishedAt: time.Now().Unix() * 1000,
		FinalCash:  led.Cash.String(),
		MoveCount:  len(led.Moves),
		Valid:      valid,
	}
}

// Create stores the run
func (r *Run) Create() error {
	return DB.Create(r).Error
}

// NewMoveRowsFromMoves flattens a move sequence for storage under runID
func NewMoveRowsFromMoves(runID int, moves []trading.Move) *MoveRows {
	rows := make(MoveRows, 0, len(moves))
	for _, m := range moves {
		rows = append(rows, MoveRow{
			RunID:     runID,
			Time:      m.Date.Unix() * 1000,
			Symbol:    m.Symbol,
			BuyAction: m.Kind.BuyAction(),
			Shares:    m.Shares,
			BuyPrice:  m.BuyPrice.String(),
			SellPrice: m.SellPrice.String(),
		})
	}
	return &rows
}

// Create stores move rows, batched so very large runs do not exceed
// sqlite's variable limit
func (ms *MoveRows) Create() error {
	if len(*ms) == 0 {
		return nil
	}
	return DB.CreateInBatches(ms, 500).Error
}

// RunFrame is one run with its move sequence
type RunFrame struct {
	Run   *Run      `json:"run,omitempty"`
	Moves []MoveRow `json:"moves,omitempty"`
}

// RunsFrame is the run listing
type RunsFrame struct {
	Runs []Run `json:"runs,omitempty"`
}

// GetRunFrame gets one run and its moves in commit order
func GetRunFrame(runID int) *RunFrame {
	var run Run
	if err := DB.First(&run, runID).Error; err != nil {
		return &RunFrame{}
	}

	var moves []MoveRow
	DB.Where("run_id = ?", runID).Order("id asc").Find(&moves)
	return &RunFrame{Run: &run, Moves: moves}
}

// GetRunsFrame gets runs for limit by descending start time
func GetRunsFrame(limit int) *RunsFrame {
	var runs []Run
	DB.Order("started_at desc").Limit(limit).Find(&runs)
	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt < runs[j].StartedAt })
	return &RunsFrame{Runs: runs}
}

// DeleteRun deletes a run and its moves
func DeleteRun(runID int) {
	DB.Where("run_id = ?", runID).Delete(&MoveRow{})
	DB.Delete(&Run{}, runID)
}

// LastRunTime returns the start time of the most recent run
func LastRunTime() (int64, error) {
	var run Run
	if err := DB.Order("started_at desc").First(&run).Error; err != nil {
		return 0, err
	}
	return run.StartedAt, nil
}
