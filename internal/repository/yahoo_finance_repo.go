package repository

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"trendbot/config"
	"trendbot/internal/domain"
	"trendbot/internal/dto"
	"trendbot/pkg/httpclient"
	"trendbot/pkg/logger"
)

// PriceRepository is the live price-history provider: the third and final
// tier of market resolution. An empty result means the upstream had no bars
// for the range, which callers treat as a terminal miss.
type PriceRepository interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) (domain.Series, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a chart-API client with a request
// limiter, so repeated cache-cold report requests cannot hammer the upstream.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) PriceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Market.MaxRequestPerMinute)
	return &yahooFinanceRepository{
		httpClient:     httpclient.New(cfg.Market.PriceBaseURL, cfg.Market.Timeout),
		cfg:            cfg,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *yahooFinanceRepository) FetchDailyBars(ctx context.Context, symbol string, days int) (domain.Series, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", now.AddDate(0, 0, -days).Unix()),
		"period2":        fmt.Sprintf("%d", now.Unix()),
		"interval":       "1d",
		"includePrePost": "false",
	}

	headers := map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":     "application/json, text/plain, */*",
	}

	var chartResp dto.YahooChartResponse
	resp, err := r.httpClient.Get(ctx, "/"+symbol, queryParams, headers, &chartResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price history: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Price provider returned non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("price provider returned status: %d", resp.StatusCode)
	}

	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("price provider error: %v", chartResp.Chart.Error)
	}

	if len(chartResp.Chart.Result) == 0 {
		return nil, nil
	}

	result := chartResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}

	quote := result.Indicators.Quote[0]
	var series domain.Series
	for i, timestamp := range result.Timestamp {
		// A null close means the bar never traded (holiday padding); only
		// those rows are dropped.
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		series = append(series, domain.PriceBar{
			Date:    time.Unix(timestamp, 0).UTC(),
			Open:    valueAt(quote.Open, i),
			High:    valueAt(quote.High, i),
			Low:     valueAt(quote.Low, i),
			Close:   *quote.Close[i],
			Volume:  valueAt(quote.Volume, i),
			ShortMA: math.NaN(),
			LongMA:  math.NaN(),
		})
	}

	return series, nil
}

// valueAt reads an auxiliary column, padding null cells with NaN. A real
// zero (e.g. zero volume) passes through unchanged.
func valueAt(column []*float64, i int) float64 {
	if i >= len(column) || column[i] == nil {
		return math.NaN()
	}
	return *column[i]
}
