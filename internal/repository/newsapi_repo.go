package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"trendbot/config"
	"trendbot/internal/dto"
	"trendbot/pkg/httpclient"
	"trendbot/pkg/logger"
)

// NewsProviderRepository is the live news provider: the third tier of news
// resolution.
type NewsProviderRepository interface {
	Search(ctx context.Context, query string, from time.Time, limit int) ([]dto.UpstreamArticle, error)
}

type newsAPIRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	log        *logger.Logger
}

func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger) NewsProviderRepository {
	return &newsAPIRepository{
		httpClient: httpclient.New(cfg.News.BaseURL, cfg.News.Timeout),
		cfg:        cfg,
		log:        log,
	}
}

func (r *newsAPIRepository) Search(ctx context.Context, query string, from time.Time, limit int) ([]dto.UpstreamArticle, error) {
	queryParams := map[string]string{
		"q":        query,
		"from":     from.Format("2006-01-02"),
		"language": r.cfg.News.Language,
		"sortBy":   "relevancy",
		"pageSize": fmt.Sprintf("%d", limit),
	}

	headers := map[string]string{
		"X-Api-Key": r.cfg.News.APIKey,
	}

	var newsResp dto.NewsAPIResponse
	resp, err := r.httpClient.Get(ctx, "/everything", queryParams, headers, &newsResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}

	if resp.StatusCode != http.StatusOK || newsResp.Status != "ok" {
		return nil, fmt.Errorf("news provider returned status %d: %s", resp.StatusCode, newsResp.Message)
	}

	articles := make([]dto.UpstreamArticle, 0, len(newsResp.Articles))
	for _, article := range newsResp.Articles {
		publishedAt, err := ParsePublishedAt(article.PublishedAt)
		if err != nil {
			r.log.WarnContext(ctx, "Skipping article with unparseable timestamp",
				logger.StringField("published_at", article.PublishedAt),
				logger.StringField("url", article.URL))
			continue
		}
		articles = append(articles, dto.UpstreamArticle{
			Title:       article.Title,
			URL:         article.URL,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

// ParsePublishedAt parses the provider's publishedAt timestamp. RFC3339
// covers both the bare Z-suffixed and fractional-seconds forms the provider
// emits.
func ParsePublishedAt(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
