package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendbot/internal/domain"
	"trendbot/internal/dto"
	"trendbot/internal/model"
)

type fakeNewsCache struct {
	articles map[domain.Sentiment][]domain.NewsArticle
	getCalls int
	setCalls int
	getErr   error
}

func (f *fakeNewsCache) GetArticles(ctx context.Context, sentiment domain.Sentiment) ([]domain.NewsArticle, bool, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	articles, found := f.articles[sentiment]
	return articles, found, nil
}

func (f *fakeNewsCache) SetArticles(ctx context.Context, sentiment domain.Sentiment, articles []domain.NewsArticle) error {
	f.setCalls++
	if f.articles == nil {
		f.articles = make(map[domain.Sentiment][]domain.NewsArticle)
	}
	f.articles[sentiment] = articles
	return nil
}

type fakeNewsRepo struct {
	rows      []model.NewsRow
	getCalls  int
	getErr    error
	createErr error
	created   []*model.NewsRow
}

func (f *fakeNewsRepo) Create(ctx context.Context, row *model.NewsRow) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, row)
	return nil
}

func (f *fakeNewsRepo) GetBySentiment(ctx context.Context, bullish bool, since time.Time, limit int) ([]model.NewsRow, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	var matched []model.NewsRow
	for _, row := range f.rows {
		if row.Sentiment == bullish && len(matched) < limit {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

type fakeNewsProvider struct {
	articles []dto.UpstreamArticle
	calls    int
	queries  []string
	err      error
}

func (f *fakeNewsProvider) Search(ctx context.Context, query string, from time.Time, limit int) ([]dto.UpstreamArticle, error) {
	f.calls++
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func newNewsFixture(t *testing.T) (*fakeNewsCache, *fakeNewsRepo, *fakeNewsProvider, NewsService) {
	t.Helper()
	cacheRepo := &fakeNewsCache{}
	newsRepo := &fakeNewsRepo{}
	providerRepo := &fakeNewsProvider{}
	svc := NewNewsService(testConfig(), testLogger(t), cacheRepo, newsRepo, providerRepo)
	return cacheRepo, newsRepo, providerRepo, svc
}

func TestResolveNewsCacheHitSkipsLowerTiers(t *testing.T) {
	cacheRepo, newsRepo, providerRepo, svc := newNewsFixture(t)
	cacheRepo.articles = map[domain.Sentiment][]domain.NewsArticle{
		domain.SentimentBullish: {{Title: "Markets rally", URL: "https://example.com/a", Date: "2026-08-20"}},
	}

	articles := svc.ResolveNews(context.Background(), true)

	require.Len(t, articles, 1)
	assert.Equal(t, "Markets rally", articles[0].Title)
	assert.Equal(t, 0, newsRepo.getCalls)
	assert.Equal(t, 0, providerRepo.calls)
}

func TestResolveNewsStoreHitWritesBack(t *testing.T) {
	cacheRepo, newsRepo, providerRepo, svc := newNewsFixture(t)
	published := time.Date(2026, 8, 22, 9, 30, 0, 0, time.UTC)
	newsRepo.rows = []model.NewsRow{
		{Title: "Sell-off deepens", URL: "https://example.com/b", PublishDate: published, Sentiment: false},
	}

	articles := svc.ResolveNews(context.Background(), false)

	require.Len(t, articles, 1)
	assert.Equal(t, "2026-08-22", articles[0].Date)
	assert.Equal(t, 0, providerRepo.calls)
	assert.Equal(t, 1, cacheRepo.setCalls, "store hit must repopulate the fast cache")
	assert.Equal(t, articles, cacheRepo.articles[domain.SentimentBearish])
}

func TestResolveNewsProviderFetchPersistsAndCaches(t *testing.T) {
	cacheRepo, newsRepo, providerRepo, svc := newNewsFixture(t)
	providerRepo.articles = []dto.UpstreamArticle{
		{Title: "Growth outlook improves", URL: "https://example.com/c", PublishedAt: time.Date(2026, 8, 24, 7, 0, 0, 0, time.UTC)},
		{Title: "Rally broadens", URL: "https://example.com/d", PublishedAt: time.Date(2026, 8, 23, 18, 0, 0, 0, time.UTC)},
	}

	articles := svc.ResolveNews(context.Background(), true)

	require.Len(t, articles, 2)
	assert.Equal(t, []string{"global market growth"}, providerRepo.queries)
	require.Len(t, newsRepo.created, 2)
	assert.True(t, newsRepo.created[0].Sentiment)
	assert.Equal(t, "https://example.com/c", newsRepo.created[0].URL)
	assert.Equal(t, 1, cacheRepo.setCalls)
}

func TestResolveNewsBearishUsesBearishQuery(t *testing.T) {
	_, _, providerRepo, svc := newNewsFixture(t)

	svc.ResolveNews(context.Background(), false)

	assert.Equal(t, []string{"market decline"}, providerRepo.queries)
}

func TestResolveNewsProviderErrorYieldsEmptyList(t *testing.T) {
	cacheRepo, _, providerRepo, svc := newNewsFixture(t)
	providerRepo.err = assert.AnError

	articles := svc.ResolveNews(context.Background(), true)

	assert.NotNil(t, articles)
	assert.Empty(t, articles)
	assert.Equal(t, 0, cacheRepo.setCalls, "a failed fetch must not cache an empty bucket")
}

func TestResolveNewsEmptyFetchIsNotCached(t *testing.T) {
	cacheRepo, _, providerRepo, svc := newNewsFixture(t)

	articles := svc.ResolveNews(context.Background(), true)
	assert.Empty(t, articles)
	assert.Equal(t, 0, cacheRepo.setCalls, "an empty batch must not be cached")

	// Once the provider has news, the next request must see it instead of a
	// pinned empty list.
	providerRepo.articles = []dto.UpstreamArticle{
		{Title: "Markets rebound", URL: "https://example.com/f", PublishedAt: time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)},
	}

	articles = svc.ResolveNews(context.Background(), true)
	require.Len(t, articles, 1)
	assert.Equal(t, "Markets rebound", articles[0].Title)
	assert.Equal(t, 2, providerRepo.calls)
}

func TestResolveNewsCachedEmptyListFallsThrough(t *testing.T) {
	cacheRepo, _, providerRepo, svc := newNewsFixture(t)
	cacheRepo.articles = map[domain.Sentiment][]domain.NewsArticle{
		domain.SentimentBullish: {},
	}
	providerRepo.articles = []dto.UpstreamArticle{
		{Title: "Rally resumes", URL: "https://example.com/g", PublishedAt: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)},
	}

	articles := svc.ResolveNews(context.Background(), true)

	require.Len(t, articles, 1)
	assert.Equal(t, 1, providerRepo.calls, "an empty cached list must not count as a hit")
}

func TestResolveNewsKeepsArticleWhenPersistFails(t *testing.T) {
	_, newsRepo, providerRepo, svc := newNewsFixture(t)
	newsRepo.createErr = assert.AnError
	providerRepo.articles = []dto.UpstreamArticle{
		{Title: "Growth outlook improves", URL: "https://example.com/h", PublishedAt: time.Date(2026, 8, 24, 7, 0, 0, 0, time.UTC)},
	}

	articles := svc.ResolveNews(context.Background(), true)

	require.Len(t, articles, 1, "a failed store write must not drop the article from the response")
	assert.Equal(t, "Growth outlook improves", articles[0].Title)
	assert.Empty(t, newsRepo.created)
}

func TestResolveNewsTierErrorsFallThrough(t *testing.T) {
	cacheRepo, newsRepo, providerRepo, svc := newNewsFixture(t)
	cacheRepo.getErr = assert.AnError
	newsRepo.getErr = assert.AnError
	providerRepo.articles = []dto.UpstreamArticle{
		{Title: "Steady gains", URL: "https://example.com/e", PublishedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)},
	}

	articles := svc.ResolveNews(context.Background(), true)

	require.Len(t, articles, 1)
	assert.Equal(t, 1, providerRepo.calls)
}
