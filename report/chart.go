package report

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"os"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/trading"
)

// ChartOptions sizes the balance chart.
type ChartOptions struct {
	Width  int
	Height int
	Title  string
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Width <= 0 {
		o.Width = 980
	}
	if o.Height <= 0 {
		o.Height = 520
	}
	if o.Title == "" {
		o.Title = "Balance history"
	}
	return o
}

// RenderBalanceSVG draws the end-of-year cash balances as an SVG line
// chart. Balances spanning many orders of magnitude are plotted on a
// log10 axis so early years stay visible.
func RenderBalanceSVG(points []trading.BalancePoint, opt ChartOptions) ([]byte, error) {
	opt = opt.withDefaults()
	if len(points) < 2 {
		return nil, fmt.Errorf("not enough balance points: %d", len(points))
	}

	vals := make([]float64, len(points))
	minV, maxV := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		v, _ := p.Cash.Float64()
		if v <= 0 {
			v = math.SmallestNonzeroFloat64
		}
		vals[i] = math.Log10(v)
		minV = math.Min(minV, vals[i])
		maxV = math.Max(maxV, vals[i])
	}
	if maxV <= minV {
		maxV = minV + 1
	}
	pad := (maxV - minV) * 0.05
	minV -= pad
	maxV += pad

	w := float64(opt.Width)
	h := float64(opt.Height)
	mLeft, mRight := 80.0, 24.0
	mTop, mBottom := 40.0, 48.0
	plotW := w - mLeft - mRight
	plotH := h - mTop - mBottom
	if plotW <= 10 || plotH <= 10 {
		return nil, fmt.Errorf("invalid chart size %dx%d", opt.Width, opt.Height)
	}

	x := func(i int) float64 {
		return mLeft + plotW*float64(i)/float64(len(points)-1)
	}
	y := func(v float64) float64 {
		return mTop + plotH*(1-(v-minV)/(maxV-minV))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		opt.Width, opt.Height, opt.Width, opt.Height)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="#ffffff"/>`, opt.Width, opt.Height)
	fmt.Fprintf(&buf, `<text x="%f" y="24" font-size="16" font-family="sans-serif">%s</text>`,
		mLeft, html.EscapeString(opt.Title))

	// horizontal gridlines with 10^k tick labels
	ticks := 5
	for t := 0; t <= ticks; t++ {
		v := minV + (maxV-minV)*float64(t)/float64(ticks)
		yy := y(v)
		fmt.Fprintf(&buf, `<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#dddddd"/>`,
			mLeft, yy, mLeft+plotW, yy)
		fmt.Fprintf(&buf, `<text x="%f" y="%f" font-size="11" font-family="sans-serif" text-anchor="end">1e%.1f</text>`,
			mLeft-6, yy+4, v)
	}

	// x labels: first, last, and every few years between
	step := (len(points) + 9) / 10
	for i := 0; i < len(points); i += step {
		fmt.Fprintf(&buf, `<text x="%f" y="%f" font-size="11" font-family="sans-serif" text-anchor="middle">%d</text>`,
			x(i), h-mBottom+18, points[i].Year)
	}

	buf.WriteString(`<polyline fill="none" stroke="#1f77b4" stroke-width="2" points="`)
	for i, v := range vals {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%.2f,%.2f", x(i), y(v))
	}
	buf.WriteString(`"/>`)
	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}

// SaveBalanceSVG renders the chart to path.
func SaveBalanceSVG(path string, points []trading.BalancePoint, opt ChartOptions) error {
	svg, err := RenderBalanceSVG(points, opt)
	if err != nil {
		return err
	}
	return os.WriteFile(path, svg, 0o644)
}
