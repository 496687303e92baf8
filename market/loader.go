package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Cleaning thresholds, matching the data-preparation rules the planner's
// dataset was built with.
const (
	// Stocks whose history carries more zero-valued days than this
	// fraction are considered unreliable and skipped entirely.
	zeroValueThreshold = 0.1

	// Days whose High-Low range falls outside mean +/- this many standard
	// deviations (per stock) are dropped as outliers.
	outlierStdDevFactor = 3.0
)

// LoadDirectory reads every .txt/.csv file in dir as one stock's daily
// history (file name stem = symbol), cleans it, and builds a Catalog.
// An empty result is an error: the planner cannot run without data.
func LoadDirectory(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}

	catalog := NewCatalog()
	stocks := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".csv" {
			continue
		}
		symbol := strings.ToUpper(strings.SplitN(entry.Name(), ".", 2)[0])

		records, err := loadFile(filepath.Join(dir, entry.Name()), symbol)
		if err != nil {
			logrus.Warnf("stock %s: %v, skipping", symbol, err)
			continue
		}
		if len(records) == 0 {
			logrus.Warnf("stock %s has no valid rows after filtering, skipping", symbol)
			continue
		}

		records = filterRangeOutliers(symbol, records)
		for _, rec := range records {
			if err := catalog.Add(rec); err != nil {
				return nil, err
			}
		}
		stocks++
	}

	if catalog.Len() == 0 {
		return nil, fmt.Errorf("no valid stock data found in %s", dir)
	}
	logrus.Infof("loaded %d records for %d stocks from %s", catalog.Len(), stocks, dir)
	return catalog, nil
}

// loadFile parses one stock file and applies the per-row cleaning rules.
// It returns an error when the whole stock must be skipped.
func loadFile(path, symbol string) ([]DayRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, err
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []DayRecord
	rows, zeroRows, dropped := 0, 0, 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows++

		rec, zero, err := parseRow(row, cols, symbol)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rows, err)
		}
		if zero {
			zeroRows++
			continue
		}
		if rec.Validate() != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if rows == 0 {
		return nil, fmt.Errorf("contains no data")
	}
	if ratio := float64(zeroRows) / float64(rows); ratio > zeroValueThreshold {
		return nil, fmt.Errorf("%.2f%% days with zero values", ratio*100)
	}
	if dropped > 0 {
		logrus.Warnf("stock %s: removed %d rows with illogical prices", symbol, dropped)
	}
	return records, nil
}

type columnMap struct {
	date, open, high, low, close, volume int
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{date: -1, open: -1, high: -1, low: -1, close: -1, volume: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "open":
			cols.open = i
		case "high":
			cols.high = i
		case "low":
			cols.low = i
		case "close":
			cols.close = i
		case "volume":
			cols.volume = i
		}
	}
	if cols.date < 0 || cols.open < 0 || cols.high < 0 ||
		cols.low < 0 || cols.close < 0 || cols.volume < 0 {
		return cols, fmt.Errorf("header missing OHLCV columns: %v", header)
	}
	return cols, nil
}

func parseRow(row []string, cols columnMap, symbol string) (rec DayRecord, zero bool, err error) {
	get := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := dateparse.ParseAny(get(cols.date))
	if err != nil {
		return rec, false, fmt.Errorf("bad date %q: %w", get(cols.date), err)
	}

	prices := make([]decimal.Decimal, 4)
	for i, col := range []int{cols.open, cols.high, cols.low, cols.close} {
		prices[i], err = decimal.NewFromString(strings.ReplaceAll(get(col), ",", ""))
		if err != nil {
			return rec, false, fmt.Errorf("bad price %q: %w", get(col), err)
		}
	}
	volume, err := strconv.ParseFloat(strings.ReplaceAll(get(cols.volume), ",", ""), 64)
	if err != nil {
		return rec, false, fmt.Errorf("bad volume %q: %w", get(cols.volume), err)
	}

	rec = DayRecord{
		Symbol: symbol,
		Date:   Midnight(date),
		Open:   prices[0],
		High:   prices[1],
		Low:    prices[2],
		Close:  prices[3],
		Volume: int64(volume),
	}
	zero = rec.Open.IsZero() || rec.High.IsZero() || rec.Low.IsZero() ||
		rec.Close.IsZero() || rec.Volume == 0
	return rec, zero, nil
}

// filterRangeOutliers drops days whose High-Low range sits outside the
// stock's mean range by more than outlierStdDevFactor sigma.
func filterRangeOutliers(symbol string, records []DayRecord) []DayRecord {
	if len(records) < 2 {
		return records
	}

	ranges := make([]float64, len(records))
	sum := 0.0
	for i, rec := range records {
		ranges[i], _ = rec.PriceRange().Float64()
		sum += ranges[i]
	}
	mean := sum / float64(len(ranges))
	variance := 0.0
	for _, r := range ranges {
		variance += (r - mean) * (r - mean)
	}
	std := math.Sqrt(variance / float64(len(ranges)-1))

	upper := mean + outlierStdDevFactor*std
	lower := math.Max(0, mean-outlierStdDevFactor*std)

	kept := records[:0]
	for i, rec := range records {
		if ranges[i] >= lower && ranges[i] <= upper {
			kept = append(kept, rec)
		}
	}
	if n := len(records) - len(kept); n > 0 {
		logrus.Infof("stock %s: removed %d range-outlier days", symbol, n)
	}
	return kept
}
