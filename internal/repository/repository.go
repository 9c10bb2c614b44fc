package repository

import (
	"gorm.io/gorm"

	"trendbot/config"
	"trendbot/pkg/cache"
	"trendbot/pkg/logger"
)

type Repository struct {
	MarketCacheRepo  MarketCacheRepository
	NewsCacheRepo    NewsCacheRepository
	SnapshotRepo     MarketSnapshotRepository
	NewsRepo         NewsRepository
	PriceRepo        PriceRepository
	NewsProviderRepo NewsProviderRepository
}

func NewRepository(cfg *config.Config, c cache.Cache, db *gorm.DB, log *logger.Logger) *Repository {
	return &Repository{
		MarketCacheRepo:  NewMarketCacheRepository(cfg, c),
		NewsCacheRepo:    NewNewsCacheRepository(cfg, c),
		SnapshotRepo:     NewMarketSnapshotRepository(db),
		NewsRepo:         NewNewsRepository(db),
		PriceRepo:        NewYahooFinanceRepository(cfg, log),
		NewsProviderRepo: NewNewsAPIRepository(cfg, log),
	}
}
