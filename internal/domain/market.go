package domain

import (
	"fmt"
	"math"
	"time"
)

// PriceBar is one dated observation in a historical series. Close is the only
// required value; the other numeric fields are NaN when the source did not
// provide them.
type PriceBar struct {
	Date    time.Time
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  float64
	ShortMA float64
	LongMA  float64
}

// Series is an ordered sequence of price bars, ascending by date. Moving
// average computation depends on this order.
type Series []PriceBar

func (s Series) First() PriceBar {
	return s[0]
}

func (s Series) Last() PriceBar {
	return s[len(s)-1]
}

// Closes extracts the close column in row order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// HasMovingAverages reports whether the MA columns were populated. A series
// reconstructed from a payload without MA columns carries NaN there.
func (s Series) HasMovingAverages() bool {
	if len(s) == 0 {
		return false
	}
	last := s.Last()
	return !math.IsNaN(last.ShortMA) && !math.IsNaN(last.LongMA)
}

// Tail returns the most recent n bars, or the whole series when it is shorter.
func (s Series) Tail(n int) Series {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// MarketAnalysis is one snapshot of trend state. It is never mutated after
// construction; the rendering stage consumes and discards it.
type MarketAnalysis struct {
	CurrentPrice float64
	StartPrice   float64
	ShortMA      float64
	LongMA       float64
	Series       Series
	IsBullish    bool
}

// NewMarketAnalysis is the single constructor path for MarketAnalysis. The
// scalar fields are derived from the first and last bars and IsBullish from
// the crossover comparison, so the flag cannot drift from the averages it
// summarizes. The series must be non-empty and carry MA columns.
func NewMarketAnalysis(series Series) (*MarketAnalysis, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("cannot build market analysis from an empty series")
	}
	if !series.HasMovingAverages() {
		return nil, fmt.Errorf("series is missing moving average columns")
	}

	last := series.Last()
	return &MarketAnalysis{
		CurrentPrice: last.Close,
		StartPrice:   series.First().Close,
		ShortMA:      last.ShortMA,
		LongMA:       last.LongMA,
		Series:       series,
		IsBullish:    last.ShortMA > last.LongMA,
	}, nil
}

// PriceChangePct is the percentage change from the first to the last close.
func (a *MarketAnalysis) PriceChangePct() float64 {
	return ((a.CurrentPrice - a.StartPrice) / a.StartPrice) * 100
}

// NewsArticle is one headline. URL acts as the natural dedup key in the
// durable store. Date is a calendar date in YYYY-MM-DD form.
type NewsArticle struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date"`
}

// Sentiment partitions news caching, storage and querying into two buckets.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
)

// SentimentFor maps the crossover outcome onto a bucket.
func SentimentFor(isBullish bool) Sentiment {
	if isBullish {
		return SentimentBullish
	}
	return SentimentBearish
}

func (s Sentiment) IsBullish() bool {
	return s == SentimentBullish
}

// CacheKey returns the fast-cache key for this bucket.
func (s Sentiment) CacheKey() string {
	return "news:" + string(s)
}

// MarketCacheKey is the fast-cache key for the analysis snapshot. A
// symbol-suffixed form (market:<symbol>) is reserved for multi-symbol use.
const MarketCacheKey = "market"
