package balances

import (
	"github.com/etnz/balances/date"
	"github.com/shopspring/decimal"
)

// MovingAverageWindow is the number of points averaged by the portfolio trend.
const MovingAverageWindow = 6

// TrendPoint is a portfolio total annotated with its trailing moving average.
type TrendPoint struct {
	On            date.Date
	Total         decimal.Decimal
	MovingAverage decimal.NullDecimal // not Valid until a full window is available
}

// Trend computes the portfolio trend of chronological 'points' over [MovingAverageWindow].
func Trend(points []Point) []TrendPoint { return MovingAverage(points, MovingAverageWindow) }

// MovingAverage annotates each point with the simple moving average of the 'window' totals ending
// at it. Points with fewer than 'window' predecessors (itself included) have no average: it is
// neither zero nor a partial average.
//
// The whole series is recomputed on each call.
func MovingAverage(points []Point, window int) []TrendPoint {
	trend := make([]TrendPoint, len(points))
	if window <= 0 {
		window = 1
	}
	n := decimal.NewFromInt(int64(window))
	sum := decimal.Zero
	for i, p := range points {
		trend[i] = TrendPoint{On: p.On, Total: p.Total}
		sum = sum.Add(p.Total)
		if i >= window {
			sum = sum.Sub(points[i-window].Total)
		}
		if i >= window-1 {
			trend[i].MovingAverage = decimal.NewNullDecimal(sum.Div(n))
		}
	}
	return trend
}
