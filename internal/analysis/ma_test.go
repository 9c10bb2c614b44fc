package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendbot/internal/domain"
)

func TestRollingMeanShrinkingWindow(t *testing.T) {
	// Fewer samples than the window: every position is the mean of the
	// prefix up to and including it, never undefined.
	values := []float64{10, 20, 30}
	means := RollingMean(values, 5)

	require.Len(t, means, 3)
	assert.InDelta(t, 10.0, means[0], 1e-9)
	assert.InDelta(t, 15.0, means[1], 1e-9)
	assert.InDelta(t, 20.0, means[2], 1e-9)
}

func TestRollingMeanFullWindow(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	means := RollingMean(values, 3)

	assert.InDelta(t, 1.0, means[0], 1e-9)
	assert.InDelta(t, 1.5, means[1], 1e-9)
	assert.InDelta(t, 2.0, means[2], 1e-9)
	assert.InDelta(t, 3.0, means[3], 1e-9)
	assert.InDelta(t, 4.0, means[4], 1e-9)
	assert.InDelta(t, 5.0, means[5], 1e-9)
}

func TestApplyMovingAveragesCrossover(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := make(domain.Series, 10)
	for i := range series {
		series[i] = domain.PriceBar{
			Date:    start.AddDate(0, 0, i),
			Close:   100 + float64(i),
			Open:    math.NaN(),
			High:    math.NaN(),
			Low:     math.NaN(),
			Volume:  math.NaN(),
			ShortMA: math.NaN(),
			LongMA:  math.NaN(),
		}
	}

	series = ApplyMovingAverages(series, 5, 10)

	last := series.Last()
	// Strictly increasing closes: the short window ends above the long one.
	assert.InDelta(t, 107.0, last.ShortMA, 1e-9)
	assert.InDelta(t, 104.5, last.LongMA, 1e-9)
	assert.Greater(t, last.ShortMA, last.LongMA)
	assert.True(t, series.HasMovingAverages())
}
