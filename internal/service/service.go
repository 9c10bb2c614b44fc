package service

import (
	"gopkg.in/telebot.v3"

	"trendbot/config"
	"trendbot/internal/repository"
	"trendbot/pkg/logger"
)

type Service struct {
	MarketService    MarketService
	NewsService      NewsService
	ReportService    ReportService
	SchedulerService *SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	bot *telebot.Bot,
) *Service {
	marketService := NewMarketService(cfg, log, repo.MarketCacheRepo, repo.SnapshotRepo, repo.PriceRepo)
	newsService := NewNewsService(cfg, log, repo.NewsCacheRepo, repo.NewsRepo, repo.NewsProviderRepo)
	reportService := NewReportService(cfg, log, marketService, newsService)
	schedulerService := NewSchedulerService(cfg, log, reportService, bot)

	return &Service{
		MarketService:    marketService,
		NewsService:      newsService,
		ReportService:    reportService,
		SchedulerService: schedulerService,
	}
}
