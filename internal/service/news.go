package service

import (
	"context"
	"time"

	"trendbot/config"
	"trendbot/internal/domain"
	"trendbot/internal/model"
	"trendbot/internal/repository"
	"trendbot/pkg/logger"
)

// NewsService resolves sentiment-aligned headlines through the same three
// tiers as the market resolver, keyed by sentiment bucket. A report may
// legitimately ship with zero news items, so every failure path yields an
// empty list rather than an error.
type NewsService interface {
	ResolveNews(ctx context.Context, isBullish bool) []domain.NewsArticle
}

type newsService struct {
	cfg          *config.Config
	log          *logger.Logger
	cacheRepo    repository.NewsCacheRepository
	newsRepo     repository.NewsRepository
	providerRepo repository.NewsProviderRepository
}

func NewNewsService(
	cfg *config.Config,
	log *logger.Logger,
	cacheRepo repository.NewsCacheRepository,
	newsRepo repository.NewsRepository,
	providerRepo repository.NewsProviderRepository,
) NewsService {
	return &newsService{
		cfg:          cfg,
		log:          log,
		cacheRepo:    cacheRepo,
		newsRepo:     newsRepo,
		providerRepo: providerRepo,
	}
}

func (s *newsService) ResolveNews(ctx context.Context, isBullish bool) []domain.NewsArticle {
	sentiment := domain.SentimentFor(isBullish)

	// Tier 1: fast cache, per-bucket key. An empty cached list is a miss:
	// pinning "no news" for the whole TTL would suppress the lower tiers
	// long after articles appear.
	cached, found, err := s.cacheRepo.GetArticles(ctx, sentiment)
	if err != nil {
		s.log.WarnContext(ctx, "Fast cache unavailable for news, falling through",
			logger.StringField("sentiment", string(sentiment)),
			logger.ErrorField(err))
	} else if found && len(cached) > 0 {
		return cached
	}

	// Tier 2: durable store within the lookback window, newest first.
	if articles, ok := s.articlesFromStore(ctx, sentiment); ok {
		return articles
	}

	// Tier 3: live provider.
	return s.fetchFromProvider(ctx, sentiment)
}

func (s *newsService) articlesFromStore(ctx context.Context, sentiment domain.Sentiment) ([]domain.NewsArticle, bool) {
	since := time.Now().AddDate(0, 0, -s.cfg.News.LookbackDays)
	rows, err := s.newsRepo.GetBySentiment(ctx, sentiment.IsBullish(), since, s.cfg.News.ResultsLimit)
	if err != nil {
		s.log.WarnContext(ctx, "Durable store unavailable for news, falling through",
			logger.StringField("sentiment", string(sentiment)),
			logger.ErrorField(err))
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}

	articles := make([]domain.NewsArticle, len(rows))
	for i, row := range rows {
		articles[i] = domain.NewsArticle{
			Title: row.Title,
			URL:   row.URL,
			Date:  row.PublishDate.Format("2006-01-02"),
		}
	}

	if err := s.cacheRepo.SetArticles(ctx, sentiment, articles); err != nil {
		s.log.WarnContext(ctx, "Failed to write news back to fast cache", logger.ErrorField(err))
	}
	return articles, true
}

func (s *newsService) fetchFromProvider(ctx context.Context, sentiment domain.Sentiment) []domain.NewsArticle {
	query := s.cfg.News.BearishQuery
	if sentiment.IsBullish() {
		query = s.cfg.News.BullishQuery
	}
	from := time.Now().AddDate(0, 0, -s.cfg.News.LookbackDays)

	fetched, err := s.providerRepo.Search(ctx, query, from, s.cfg.News.ResultsLimit)
	if err != nil {
		s.log.ErrorContext(ctx, "News provider fetch failed, shipping without news",
			logger.StringField("sentiment", string(sentiment)),
			logger.ErrorField(err))
		return []domain.NewsArticle{}
	}

	articles := make([]domain.NewsArticle, 0, len(fetched))
	for _, item := range fetched {
		articles = append(articles, domain.NewsArticle{
			Title: item.Title,
			URL:   item.URL,
			Date:  item.PublishedAt.Format("2006-01-02"),
		})

		row := &model.NewsRow{
			Title:       item.Title,
			URL:         item.URL,
			PublishDate: item.PublishedAt,
			Sentiment:   sentiment.IsBullish(),
		}
		if err := s.newsRepo.Create(ctx, row); err != nil {
			s.log.WarnContext(ctx, "Failed to persist news article",
				logger.StringField("url", item.URL),
				logger.ErrorField(err))
		}
	}

	// An empty fetch is a valid outcome but not worth caching: the next
	// request should probe again.
	if len(articles) > 0 {
		if err := s.cacheRepo.SetArticles(ctx, sentiment, articles); err != nil {
			s.log.WarnContext(ctx, "Failed to write news back to fast cache", logger.ErrorField(err))
		}
	}
	return articles
}
