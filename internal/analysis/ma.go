// Package analysis holds the moving-average math behind the crossover rule.
package analysis

import "trendbot/internal/domain"

// RollingMean computes the trailing simple moving average of values for the
// given window. Positions before the window fills use a shrinking window (the
// mean of everything seen so far), so the result has no leading gaps.
func RollingMean(values []float64, window int) []float64 {
	means := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		n := window
		if i+1 < window {
			n = i + 1
		} else if i >= window {
			sum -= values[i-window]
		}
		means[i] = sum / float64(n)
	}
	return means
}

// ApplyMovingAverages fills the short and long MA columns of the series in
// place and returns it for chaining.
func ApplyMovingAverages(series domain.Series, shortWindow, longWindow int) domain.Series {
	closes := series.Closes()
	shortMA := RollingMean(closes, shortWindow)
	longMA := RollingMean(closes, longWindow)
	for i := range series {
		series[i].ShortMA = shortMA[i]
		series[i].LongMA = longMA[i]
	}
	return series
}
