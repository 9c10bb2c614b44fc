package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendbot/internal/domain"
)

type stubMarketService struct {
	analysis *domain.MarketAnalysis
	err      error
}

func (s *stubMarketService) Analyze(ctx context.Context) (*domain.MarketAnalysis, error) {
	return s.analysis, s.err
}

type stubNewsService struct {
	articles  []domain.NewsArticle
	sentiment []bool
}

func (s *stubNewsService) ResolveNews(ctx context.Context, isBullish bool) []domain.NewsArticle {
	s.sentiment = append(s.sentiment, isBullish)
	return s.articles
}

func bullishAnalysis(t *testing.T) *domain.MarketAnalysis {
	t.Helper()
	cacheRepo := &fakeMarketCache{}
	priceRepo := &fakePriceRepo{series: makeSeries(t, increasingCloses(10)...)}
	svc := NewMarketService(testConfig(), testLogger(t), cacheRepo, &fakeSnapshotRepo{}, priceRepo)
	analysis, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	return analysis
}

func TestGenerateReportMarketFailure(t *testing.T) {
	news := &stubNewsService{}
	svc := NewReportService(testConfig(), testLogger(t),
		&stubMarketService{err: ErrNoMarketData}, news)

	report := svc.GenerateReport(context.Background())

	assert.Equal(t, failedReportText, report.Text)
	assert.Nil(t, report.Chart)
	assert.Nil(t, report.Analysis)
	assert.Empty(t, news.sentiment, "news must not be resolved without an analysis")
}

func TestGenerateReportNoNews(t *testing.T) {
	news := &stubNewsService{articles: []domain.NewsArticle{}}
	svc := NewReportService(testConfig(), testLogger(t),
		&stubMarketService{analysis: bullishAnalysis(t)}, news)

	report := svc.GenerateReport(context.Background())

	assert.Contains(t, report.Text, "*Market Analysis*")
	assert.Contains(t, report.Text, "Current Price: `$109.00`")
	assert.Contains(t, report.Text, "Change: `+9.00%`")
	assert.Contains(t, report.Text, "_Bullish 📈_")
	assert.Contains(t, report.Text, "⚠️ No relevant news articles found.")
	assert.NotContains(t, report.Text, "*Recent Market News*")
	assert.NotEmpty(t, report.Chart, "a present analysis must ship with a chart")
}

func TestGenerateReportWithNews(t *testing.T) {
	news := &stubNewsService{articles: []domain.NewsArticle{
		{Title: "Markets rally", URL: "https://example.com/a", Date: "2026-08-20"},
		{Title: "Growth outlook improves", URL: "https://example.com/b", Date: "2026-08-19"},
	}}
	svc := NewReportService(testConfig(), testLogger(t),
		&stubMarketService{analysis: bullishAnalysis(t)}, news)

	report := svc.GenerateReport(context.Background())

	assert.Contains(t, report.Text, "*Recent Market News*")
	assert.Contains(t, report.Text, "[Markets rally](https://example.com/a)")
	assert.Contains(t, report.Text, "📅 2026-08-20")
	assert.NotContains(t, report.Text, "No relevant news articles found")
	assert.Equal(t, []bool{true}, news.sentiment, "news sentiment must follow the analysis")
	assert.Len(t, report.News, 2)
}
