package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barSeries(closes, shortMA, longMA []float64) Series {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := make(Series, len(closes))
	for i := range closes {
		series[i] = PriceBar{
			Date:    start.AddDate(0, 0, i),
			Close:   closes[i],
			ShortMA: shortMA[i],
			LongMA:  longMA[i],
		}
	}
	return series
}

func TestNewMarketAnalysisDerivesFields(t *testing.T) {
	series := barSeries(
		[]float64{100, 105, 109},
		[]float64{100, 102.5, 104.67},
		[]float64{100, 102.5, 104.67},
	)
	series[2].ShortMA = 107
	series[2].LongMA = 104.5

	analysis, err := NewMarketAnalysis(series)
	require.NoError(t, err)

	assert.Equal(t, 109.0, analysis.CurrentPrice)
	assert.Equal(t, 100.0, analysis.StartPrice)
	assert.Equal(t, 107.0, analysis.ShortMA)
	assert.Equal(t, 104.5, analysis.LongMA)
	assert.True(t, analysis.IsBullish)
	assert.InDelta(t, 9.0, analysis.PriceChangePct(), 1e-9)
}

func TestNewMarketAnalysisBearish(t *testing.T) {
	series := barSeries(
		[]float64{109, 104, 100},
		[]float64{109, 106.5, 104.33},
		[]float64{109, 106.5, 104.33},
	)
	series[2].ShortMA = 102
	series[2].LongMA = 104.5

	analysis, err := NewMarketAnalysis(series)
	require.NoError(t, err)
	assert.False(t, analysis.IsBullish)
	assert.Negative(t, analysis.PriceChangePct())
}

func TestNewMarketAnalysisEmptySeries(t *testing.T) {
	_, err := NewMarketAnalysis(Series{})
	assert.Error(t, err)
}

func TestNewMarketAnalysisMissingAverages(t *testing.T) {
	series := barSeries(
		[]float64{100, 105},
		[]float64{math.NaN(), math.NaN()},
		[]float64{math.NaN(), math.NaN()},
	)
	_, err := NewMarketAnalysis(series)
	assert.Error(t, err)
}

func TestSeriesTail(t *testing.T) {
	series := barSeries(
		[]float64{1, 2, 3, 4},
		[]float64{1, 1, 1, 1},
		[]float64{1, 1, 1, 1},
	)

	assert.Len(t, series.Tail(2), 2)
	assert.Equal(t, 3.0, series.Tail(2).First().Close)
	assert.Len(t, series.Tail(10), 4, "tail larger than the series returns it whole")
}

func TestSentimentBuckets(t *testing.T) {
	assert.Equal(t, SentimentBullish, SentimentFor(true))
	assert.Equal(t, SentimentBearish, SentimentFor(false))
	assert.True(t, SentimentBullish.IsBullish())
	assert.False(t, SentimentBearish.IsBullish())
	assert.Equal(t, "news:bullish", SentimentBullish.CacheKey())
	assert.Equal(t, "news:bearish", SentimentBearish.CacheKey())
}
