package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trendbot/config"
	"trendbot/internal/domain"
	"trendbot/pkg/chart"
	"trendbot/pkg/logger"
	"trendbot/pkg/utils"
)

const failedReportText = "❌ Failed to fetch market data."

// Report is a fully assembled deliverable: Telegram-markdown text plus an
// optional PNG chart. Chart is nil when the analysis is absent or rendering
// failed.
type Report struct {
	Text        string
	Chart       []byte
	Analysis    *domain.MarketAnalysis
	News        []domain.NewsArticle
	GeneratedAt time.Time
}

// ReportService assembles the market report: analysis first, then news driven
// by the analysis' sentiment, then formatting and the chart.
type ReportService interface {
	GenerateReport(ctx context.Context) *Report
}

type reportService struct {
	cfg           *config.Config
	log           *logger.Logger
	marketService MarketService
	newsService   NewsService
}

func NewReportService(cfg *config.Config, log *logger.Logger, marketService MarketService, newsService NewsService) ReportService {
	return &reportService{
		cfg:           cfg,
		log:           log,
		marketService: marketService,
		newsService:   newsService,
	}
}

// GenerateReport never fails: an absent analysis produces a fixed failure
// message with no chart, and empty news only adds a warning line.
func (s *reportService) GenerateReport(ctx context.Context) *Report {
	report := &Report{GeneratedAt: time.Now()}

	analysis, err := s.marketService.Analyze(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get market analysis", logger.ErrorField(err))
		report.Text = failedReportText
		return report
	}
	report.Analysis = analysis
	report.News = s.newsService.ResolveNews(ctx, analysis.IsBullish)
	report.Text = s.buildText(analysis, report.News)

	png, err := chart.Render(analysis.Series, s.cfg.Market.ShortMAPeriod, s.cfg.Market.LongMAPeriod, s.cfg.Market.Symbol)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to render chart, sending text only", logger.ErrorField(err))
	} else {
		report.Chart = png
	}

	return report
}

// buildText formats the report in Telegram Markdown V1.
func (s *reportService) buildText(analysis *domain.MarketAnalysis, news []domain.NewsArticle) string {
	priceChange := analysis.PriceChangePct()

	priceEmoji := "📉"
	if priceChange > 0 {
		priceEmoji = "📈"
	}
	trend, trendEmoji := "Bearish", "📉"
	if analysis.IsBullish {
		trend, trendEmoji = "Bullish", "📈"
	}

	var sb strings.Builder
	sb.WriteString("*Market Analysis*\n")
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("*Price Change* %s\n", priceEmoji))
	sb.WriteString(fmt.Sprintf("Current Price: `$%.2f`\n", analysis.CurrentPrice))
	sb.WriteString(fmt.Sprintf("Change: `%s`\n", utils.FormatPercentage(priceChange)))
	sb.WriteString("\n")
	sb.WriteString("*Market Momentum*\n")
	sb.WriteString(fmt.Sprintf("Short MA (%dd): `$%.2f`\n", s.cfg.Market.ShortMAPeriod, analysis.ShortMA))
	sb.WriteString(fmt.Sprintf("Long MA (%dd): `$%.2f`\n", s.cfg.Market.LongMAPeriod, analysis.LongMA))
	sb.WriteString(fmt.Sprintf("Trend: _%s %s_", trend, trendEmoji))

	if len(news) == 0 {
		sb.WriteString("\n⚠️ No relevant news articles found.")
		return sb.String()
	}

	sb.WriteString("\n\n*Recent Market News*")
	for _, article := range news {
		sb.WriteString(fmt.Sprintf("\n📰 [%s](%s)\n📅 %s", article.Title, article.URL, article.Date))
	}
	return sb.String()
}
