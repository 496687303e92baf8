package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/report"
	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/trading"
)

func sampleMoves() []trading.Move {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	fee := decimal.RequireFromString("0.01")
	return []trading.Move{
		{
			Symbol: "AAPL", Date: day("2005-03-01"), Kind: trading.BuyLowSellClose,
			Shares: 11, BuyPrice: decimal.RequireFromString("9.00"),
			SellPrice: decimal.RequireFromString("11.00"), FeeRate: fee,
		},
		{
			Symbol: "MSFT", Date: day("2005-03-02"), Kind: trading.BuyOpenSellHigh,
			Shares: 3, BuyPrice: decimal.RequireFromString("20.00"),
			SellPrice: decimal.RequireFromString("22.00"), FeeRate: fee,
		},
	}
}

func TestWriteMoves(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteMoves(&buf, sampleMoves()))

	want := strings.Join([]string{
		"4",
		"2005-03-01 buy-low AAPL 11",
		"2005-03-01 sell-close AAPL 11",
		"2005-03-02 buy-open MSFT 3",
		"2005-03-02 sell-high MSFT 3",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteMovesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteMoves(&buf, nil))
	assert.Equal(t, "0\n", buf.String())
}

func TestSaveMoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moves.txt")
	require.NoError(t, report.SaveMoves(path, sampleMoves()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "4\n"))
}

func balanceHistory() []trading.BalancePoint {
	return []trading.BalancePoint{
		{Year: 2000, Cash: decimal.RequireFromString("100")},
		{Year: 2001, Cash: decimal.RequireFromString("5400")},
		{Year: 2002, Cash: decimal.RequireFromString("1250000")},
	}
}

func TestRenderBalanceSVG(t *testing.T) {
	assert := assert.New(t)

	svg, err := report.RenderBalanceSVG(balanceHistory(), report.ChartOptions{Title: "run"})
	require.NoError(t, err)

	out := string(svg)
	assert.True(strings.HasPrefix(out, "<svg "))
	assert.True(strings.HasSuffix(out, "</svg>"))
	assert.Contains(out, "<polyline")
	assert.Contains(out, ">run</text>")
	assert.Contains(out, ">2000</text>")
	assert.Contains(out, ">2002</text>")
}

func TestRenderBalanceSVGEscapesTitle(t *testing.T) {
	svg, err := report.RenderBalanceSVG(balanceHistory(), report.ChartOptions{Title: "a<b>"})
	require.NoError(t, err)
	assert.Contains(t, string(svg), "a&lt;b&gt;")
	assert.NotContains(t, string(svg), "<b>")
}

func TestRenderBalanceSVGTooFewPoints(t *testing.T) {
	_, err := report.RenderBalanceSVG(balanceHistory()[:1], report.ChartOptions{})
	assert.Error(t, err)
}

func TestSaveBalanceSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.svg")
	require.NoError(t, report.SaveBalanceSVG(path, balanceHistory(), report.ChartOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<polyline")
}
