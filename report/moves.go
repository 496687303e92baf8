// Package report turns a finished planning run into its output artifacts:
// the moves text file and the balance-history chart.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/trading"
)

// WriteMoves emits the canonical moves file: a leg count on the first
// line, then one "date action symbol quantity" line per leg, buy before
// sell for every move.
func WriteMoves(w io.Writer, moves []trading.Move) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", len(moves)*2); err != nil {
		return err
	}
	for _, m := range moves {
		date := m.Date.Format("2006-01-02")
		if _, err := fmt.Fprintf(bw, "%s %s %s %d\n", date, m.Kind.BuyAction(), m.Symbol, m.Shares); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%s %s %s %d\n", date, m.Kind.SellAction(), m.Symbol, m.Shares); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveMoves writes the moves file to path.
func SaveMoves(path string, moves []trading.Move) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteMoves(f, moves); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
