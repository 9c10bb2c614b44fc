package repository

import (
	"context"

	"trendbot/config"
	"trendbot/internal/codec"
	"trendbot/internal/domain"
	"trendbot/pkg/cache"
)

// MarketCacheRepository is the fast tier for the analysis snapshot. A decode
// failure surfaces as an error so the resolver can log it and fall through;
// the stale entry stays in place until the next Set overwrites it.
type MarketCacheRepository interface {
	GetAnalysis(ctx context.Context) (*domain.MarketAnalysis, bool, error)
	SetAnalysis(ctx context.Context, analysis *domain.MarketAnalysis) error
}

type marketCacheRepository struct {
	cache cache.Cache
	cfg   *config.Config
}

func NewMarketCacheRepository(cfg *config.Config, c cache.Cache) MarketCacheRepository {
	return &marketCacheRepository{cache: c, cfg: cfg}
}

func (r *marketCacheRepository) GetAnalysis(ctx context.Context) (*domain.MarketAnalysis, bool, error) {
	data, found, err := r.cache.Get(ctx, domain.MarketCacheKey)
	if err != nil || !found {
		return nil, false, err
	}
	analysis, err := codec.UnmarshalAnalysis(data)
	if err != nil {
		return nil, false, err
	}
	return analysis, true, nil
}

func (r *marketCacheRepository) SetAnalysis(ctx context.Context, analysis *domain.MarketAnalysis) error {
	data, err := codec.MarshalAnalysis(analysis)
	if err != nil {
		return err
	}
	return r.cache.Set(ctx, domain.MarketCacheKey, data, r.cfg.Cache.MarketTTL)
}
