package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"trendbot/internal/domain"
)

// Render draws the close price and both moving averages as a PNG line chart.
func Render(series domain.Series, shortPeriod, longPeriod int, symbol string) ([]byte, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("not enough data points to render a chart: %d", len(series))
	}

	dates := make([]float64, len(series))
	closes := make([]float64, len(series))
	shortMA := make([]float64, len(series))
	longMA := make([]float64, len(series))
	for i, bar := range series {
		dates[i] = float64(bar.Date.Unix())
		closes[i] = bar.Close
		shortMA[i] = bar.ShortMA
		longMA[i] = bar.LongMA
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("%s Market Trend Analysis", symbol),
		XAxis: chart.XAxis{Name: "Date"},
		YAxis: chart.YAxis{Name: "Price"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Price",
				XValues: dates,
				YValues: closes,
				Style:   chart.Style{StrokeColor: drawing.ColorBlue},
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("%d-day MA", shortPeriod),
				XValues: dates,
				YValues: shortMA,
				Style:   chart.Style{StrokeColor: drawing.ColorRed},
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("%d-day MA", longPeriod),
				XValues: dates,
				YValues: longMA,
				Style:   chart.Style{StrokeColor: drawing.ColorGreen},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
