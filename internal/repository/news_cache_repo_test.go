package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendbot/config"
	"trendbot/internal/domain"
	"trendbot/pkg/cache"
)

func newNewsCacheRepo(t *testing.T) NewsCacheRepository {
	t.Helper()
	cfg := &config.Config{Cache: config.Cache{NewsTTL: time.Hour}}
	return NewNewsCacheRepository(cfg, cache.NewInMemory(time.Minute))
}

func TestNewsCacheRepositoryRoundTrip(t *testing.T) {
	repo := newNewsCacheRepo(t)
	ctx := context.Background()

	articles := []domain.NewsArticle{
		{Title: "Markets rally", URL: "https://example.com/a", Date: "2026-08-20"},
	}
	require.NoError(t, repo.SetArticles(ctx, domain.SentimentBullish, articles))

	got, found, err := repo.GetArticles(ctx, domain.SentimentBullish)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, articles, got)

	// Buckets are independent.
	_, found, err = repo.GetArticles(ctx, domain.SentimentBearish)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewsCacheRepositoryEmptyListReadsAsMiss(t *testing.T) {
	repo := newNewsCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetArticles(ctx, domain.SentimentBullish, []domain.NewsArticle{}))

	got, found, err := repo.GetArticles(ctx, domain.SentimentBullish)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}
