package repository

import (
	"context"

	"trendbot/config"
	"trendbot/internal/codec"
	"trendbot/internal/domain"
	"trendbot/pkg/cache"
)

// NewsCacheRepository is the fast tier for news lists, keyed per sentiment
// bucket.
type NewsCacheRepository interface {
	GetArticles(ctx context.Context, sentiment domain.Sentiment) ([]domain.NewsArticle, bool, error)
	SetArticles(ctx context.Context, sentiment domain.Sentiment, articles []domain.NewsArticle) error
}

type newsCacheRepository struct {
	cache cache.Cache
	cfg   *config.Config
}

func NewNewsCacheRepository(cfg *config.Config, c cache.Cache) NewsCacheRepository {
	return &newsCacheRepository{cache: c, cfg: cfg}
}

func (r *newsCacheRepository) GetArticles(ctx context.Context, sentiment domain.Sentiment) ([]domain.NewsArticle, bool, error) {
	data, found, err := r.cache.Get(ctx, sentiment.CacheKey())
	if err != nil || !found {
		return nil, false, err
	}
	articles, err := codec.UnmarshalArticles(data)
	if err != nil {
		return nil, false, err
	}
	// An empty list reads as a miss so the resolver keeps probing the lower
	// tiers until news actually exists.
	if len(articles) == 0 {
		return nil, false, nil
	}
	return articles, true, nil
}

func (r *newsCacheRepository) SetArticles(ctx context.Context, sentiment domain.Sentiment, articles []domain.NewsArticle) error {
	data, err := codec.MarshalArticles(articles)
	if err != nil {
		return err
	}
	return r.cache.Set(ctx, sentiment.CacheKey(), data, r.cfg.Cache.NewsTTL)
}
