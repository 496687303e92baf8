package market

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/btree"
)

// Series is the full cleaned history of one stock, in date order.
type Series struct {
	Symbol  string
	Records []*DayRecord

	byDate map[int64]*DayRecord
}

// Day returns the record for the given calendar day, if the stock traded.
func (s *Series) Day(date time.Time) (*DayRecord, bool) {
	rec, ok := s.byDate[Midnight(date).Unix()]
	return rec, ok
}

func recordLess(a, b *DayRecord) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.Symbol < b.Symbol
}

// Catalog is the read-only market series for a whole run: every stock's
// daily records, indexed per symbol and globally ordered by (date, symbol)
// so planners can scan arbitrary date ranges without re-sorting.
type Catalog struct {
	series map[string]*Series
	index  *btree.BTreeG[*DayRecord]
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		series: map[string]*Series{},
		index:  btree.NewG(32, recordLess),
	}
}

// Add validates rec and inserts it. Duplicate (symbol, date) pairs are
// rejected so the per-day volume accounting stays unambiguous.
func (c *Catalog) Add(rec DayRecord) error {
	rec.Date = Midnight(rec.Date)
	if err := rec.Validate(); err != nil {
		return err
	}

	s, ok := c.series[rec.Symbol]
	if !ok {
		s = &Series{Symbol: rec.Symbol, byDate: map[int64]*DayRecord{}}
		c.series[rec.Symbol] = s
	}
	key := rec.Date.Unix()
	if _, dup := s.byDate[key]; dup {
		return fmt.Errorf("%s %s: duplicate record", rec.Symbol, rec.Date.Format(dateFormat))
	}

	stored := &rec
	s.byDate[key] = stored
	s.Records = append(s.Records, stored)
	if n := len(s.Records); n > 1 && stored.Date.Before(s.Records[n-2].Date) {
		sort.Slice(s.Records, func(i, j int) bool {
			return s.Records[i].Date.Before(s.Records[j].Date)
		})
	}
	c.index.ReplaceOrInsert(stored)
	return nil
}

// Day looks up one stock's record for one calendar day.
func (c *Catalog) Day(symbol string, date time.Time) (*DayRecord, bool) {
	s, ok := c.series[symbol]
	if !ok {
		return nil, false
	}
	return s.Day(date)
}

// Series returns one stock's history, or nil when the symbol is unknown.
func (c *Catalog) Series(symbol string) *Series {
	return c.series[symbol]
}

// Range visits every record with start <= date < end in ascending
// (date, symbol) order. The iterator returns false to stop early.
func (c *Catalog) Range(start, end time.Time, fn func(*DayRecord) bool) {
	from := &DayRecord{Date: Midnight(start)}
	to := &DayRecord{Date: Midnight(end)}
	c.index.AscendRange(from, to, fn)
}

// Bounds reports the half-open [first, last+1day) date span covered by the
// catalog. ok is false for an empty catalog.
func (c *Catalog) Bounds() (start, end time.Time, ok bool) {
	min, okMin := c.index.Min()
	max, okMax := c.index.Max()
	if !okMin || !okMax {
		return time.Time{}, time.Time{}, false
	}
	return min.Date, max.Date.AddDate(0, 0, 1), true
}

// Symbols lists the catalog's stocks in ascending order.
func (c *Catalog) Symbols() []string {
	out := make([]string, 0, len(c.series))
	for sym := range c.series {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Len is the total number of day records across all stocks.
func (c *Catalog) Len() int {
	return c.index.Len()
}
