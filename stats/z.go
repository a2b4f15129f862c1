package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	zValue := dist.Quantile(area)
	return zValue
}

// WinRateInterval returns the observed win rate and the half-width of
// its normal-approximation confidence interval. A draw counts as half a
// win.
func WinRateInterval(wins, draws, games int, confidenceInterval float64) (rate, halfWidth float64) {
	if games == 0 {
		return 0, 0
	}
	n := float64(games)
	rate = (float64(wins) + float64(draws)/2) / n
	halfWidth = ZVal(confidenceInterval) * math.Sqrt(rate*(1-rate)/n)
	return rate, halfWidth
}
