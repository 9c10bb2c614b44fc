// Package codec converts domain records to and from their JSON wire shape.
//
// A historical series is serialized column-oriented: an ordered list of date
// strings plus a map from column name to a list of values of equal length, so
// the persisted and cached shape reconstructs the same row order on read.
// NaN values travel as JSON null; the stdlib encoder rejects NaN literals.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"trendbot/internal/domain"
)

// ErrMalformedPayload marks any decode failure: missing required keys, column
// length mismatches, or broken JSON. Callers treat it the same as a miss.
var ErrMalformedPayload = errors.New("malformed payload")

const dateLayout = time.RFC3339

const (
	colOpen    = "open"
	colHigh    = "high"
	colLow     = "low"
	colClose   = "close"
	colVolume  = "volume"
	colShortMA = "short_ma"
	colLongMA  = "long_ma"
)

type seriesPayload struct {
	Dates []string              `json:"dates"`
	Data  map[string][]*float64 `json:"data"`
}

type analysisPayload struct {
	CurrentPrice *float64       `json:"current_price"`
	StartPrice   *float64       `json:"start_price"`
	ShortMA      *float64       `json:"short_ma"`
	LongMA       *float64       `json:"long_ma"`
	IsBullish    *bool          `json:"is_bullish"`
	Historical   *seriesPayload `json:"historical_data"`
}

// MarshalSeries encodes a series into its column-oriented wire form.
func MarshalSeries(series domain.Series) ([]byte, error) {
	return json.Marshal(seriesToPayload(series))
}

// UnmarshalSeries rebuilds a series from its wire form. The dates list and the
// close column are required; all other columns default to NaN.
func UnmarshalSeries(data []byte) (domain.Series, error) {
	var payload seriesPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return seriesFromPayload(&payload)
}

// MarshalAnalysis encodes a market analysis snapshot.
func MarshalAnalysis(a *domain.MarketAnalysis) ([]byte, error) {
	payload := analysisPayload{
		CurrentPrice: floatPtr(a.CurrentPrice),
		StartPrice:   floatPtr(a.StartPrice),
		ShortMA:      floatPtr(a.ShortMA),
		LongMA:       floatPtr(a.LongMA),
		IsBullish:    &a.IsBullish,
		Historical:   seriesToPayload(a.Series),
	}
	return json.Marshal(payload)
}

// UnmarshalAnalysis decodes a snapshot and rebuilds the analysis through its
// single constructor, so the bullish flag is re-derived from the moving
// averages rather than trusted from the payload. A missing required key or a
// broken series yields ErrMalformedPayload, never a partial record.
func UnmarshalAnalysis(data []byte) (*domain.MarketAnalysis, error) {
	var payload analysisPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.CurrentPrice == nil || payload.StartPrice == nil ||
		payload.ShortMA == nil || payload.LongMA == nil ||
		payload.IsBullish == nil || payload.Historical == nil {
		return nil, fmt.Errorf("%w: missing required analysis keys", ErrMalformedPayload)
	}

	series, err := seriesFromPayload(payload.Historical)
	if err != nil {
		return nil, err
	}

	analysis, err := domain.NewMarketAnalysis(series)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return analysis, nil
}

// MarshalArticles encodes a news list.
func MarshalArticles(articles []domain.NewsArticle) ([]byte, error) {
	return json.Marshal(articles)
}

// UnmarshalArticles decodes a news list.
func UnmarshalArticles(data []byte) ([]domain.NewsArticle, error) {
	var articles []domain.NewsArticle
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return articles, nil
}

func seriesToPayload(series domain.Series) *seriesPayload {
	payload := &seriesPayload{
		Dates: make([]string, len(series)),
		Data: map[string][]*float64{
			colOpen:    make([]*float64, len(series)),
			colHigh:    make([]*float64, len(series)),
			colLow:     make([]*float64, len(series)),
			colClose:   make([]*float64, len(series)),
			colVolume:  make([]*float64, len(series)),
			colShortMA: make([]*float64, len(series)),
			colLongMA:  make([]*float64, len(series)),
		},
	}
	for i, bar := range series {
		payload.Dates[i] = bar.Date.Format(dateLayout)
		payload.Data[colOpen][i] = floatPtr(bar.Open)
		payload.Data[colHigh][i] = floatPtr(bar.High)
		payload.Data[colLow][i] = floatPtr(bar.Low)
		payload.Data[colClose][i] = floatPtr(bar.Close)
		payload.Data[colVolume][i] = floatPtr(bar.Volume)
		payload.Data[colShortMA][i] = floatPtr(bar.ShortMA)
		payload.Data[colLongMA][i] = floatPtr(bar.LongMA)
	}
	return payload
}

func seriesFromPayload(payload *seriesPayload) (domain.Series, error) {
	if len(payload.Dates) == 0 {
		return nil, fmt.Errorf("%w: series has no dates", ErrMalformedPayload)
	}
	closes, ok := payload.Data[colClose]
	if !ok {
		return nil, fmt.Errorf("%w: series is missing the close column", ErrMalformedPayload)
	}
	for name, column := range payload.Data {
		if len(column) != len(payload.Dates) {
			return nil, fmt.Errorf("%w: column %q has %d values for %d dates",
				ErrMalformedPayload, name, len(column), len(payload.Dates))
		}
	}

	series := make(domain.Series, len(payload.Dates))
	for i, dateStr := range payload.Dates {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q: %v", ErrMalformedPayload, dateStr, err)
		}
		if closes[i] == nil {
			return nil, fmt.Errorf("%w: close is null at row %d", ErrMalformedPayload, i)
		}
		series[i] = domain.PriceBar{
			Date:    date,
			Open:    floatVal(payload.Data[colOpen], i),
			High:    floatVal(payload.Data[colHigh], i),
			Low:     floatVal(payload.Data[colLow], i),
			Close:   *closes[i],
			Volume:  floatVal(payload.Data[colVolume], i),
			ShortMA: floatVal(payload.Data[colShortMA], i),
			LongMA:  floatVal(payload.Data[colLongMA], i),
		}
	}
	return series, nil
}

// floatPtr maps NaN to nil so the value serializes as null.
func floatPtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// floatVal maps an absent column or a null cell back to NaN.
func floatVal(column []*float64, i int) float64 {
	if column == nil || column[i] == nil {
		return math.NaN()
	}
	return *column[i]
}
