package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/balances"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartOptions configures [Chart].
type ChartOptions struct {
	Width, Height int
	DateLayout    string // x axis labels, "02/01" when empty
}

// Chart renders the portfolio total, and its moving average when defined, as a PNG line chart.
//
// The y axis spans the values padded by 10% of their range on both sides.
func Chart(trend []balances.TrendPoint, opts ChartOptions) ([]byte, error) {
	if len(trend) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(trend))
	}
	if opts.Width <= 0 {
		opts.Width = 900
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}
	if opts.DateLayout == "" {
		opts.DateLayout = "02/01"
	}

	xValues := make([]time.Time, len(trend))
	totalY := make([]float64, len(trend))
	var maX []time.Time
	var maY []float64
	for i, p := range trend {
		xValues[i] = p.On.Time()
		totalY[i] = p.Total.InexactFloat64()
		if p.MovingAverage.Valid {
			maX = append(maX, xValues[i])
			maY = append(maY, p.MovingAverage.Decimal.InexactFloat64())
		}
	}
	lo, hi := paddedRange(append(totalY[:len(totalY):len(totalY)], maY...))

	series := []chart.Series{
		chart.TimeSeries{
			Name: "Total",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("2196f3"),
				StrokeWidth: 2,
			},
			XValues: xValues,
			YValues: totalY,
		},
	}
	if len(maX) >= 2 {
		series = append(series, chart.TimeSeries{
			Name: fmt.Sprintf("Moving Average (%d)", balances.MovingAverageWindow),
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"),
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: maX,
			YValues: maY,
		})
	}

	graph := chart.Chart{
		Title:  "Portfolio Value Over Time",
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format(opts.DateLayout)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// paddedRange returns the bounds of 'values' widened by 10% of their range. A flat series is
// widened by 10% of its magnitude, or by 1 around zero.
func paddedRange(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = max(lo, -lo) * 0.1
	}
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}
