package service

import (
	"context"
	"errors"
	"time"

	"trendbot/config"
	"trendbot/internal/analysis"
	"trendbot/internal/codec"
	"trendbot/internal/domain"
	"trendbot/internal/model"
	"trendbot/internal/repository"
	"trendbot/pkg/logger"
)

// ErrNoMarketData is returned when all three tiers missed: cache empty, store
// empty and the upstream provider produced no bars.
var ErrNoMarketData = errors.New("no market data available")

// MarketService resolves the market analysis through the fast cache, the
// durable store and the live provider, in that fixed order, writing back to
// the faster tiers on every lower-tier hit.
type MarketService interface {
	Analyze(ctx context.Context) (*domain.MarketAnalysis, error)
}

type marketService struct {
	cfg          *config.Config
	log          *logger.Logger
	cacheRepo    repository.MarketCacheRepository
	snapshotRepo repository.MarketSnapshotRepository
	priceRepo    repository.PriceRepository
}

func NewMarketService(
	cfg *config.Config,
	log *logger.Logger,
	cacheRepo repository.MarketCacheRepository,
	snapshotRepo repository.MarketSnapshotRepository,
	priceRepo repository.PriceRepository,
) MarketService {
	return &marketService{
		cfg:          cfg,
		log:          log,
		cacheRepo:    cacheRepo,
		snapshotRepo: snapshotRepo,
		priceRepo:    priceRepo,
	}
}

// Analyze obtains a historical series through the tiers, fills in the moving
// average columns when the series came without them, and builds the analysis
// record. All tier failures short of a terminal upstream miss are absorbed as
// misses for that tier.
func (s *marketService) Analyze(ctx context.Context) (*domain.MarketAnalysis, error) {
	series, err := s.historicalSeries(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Market resolution failed", logger.ErrorField(err))
		return nil, ErrNoMarketData
	}
	if len(series) == 0 {
		return nil, ErrNoMarketData
	}

	if !series.HasMovingAverages() {
		series = analysis.ApplyMovingAverages(series, s.cfg.Market.ShortMAPeriod, s.cfg.Market.LongMAPeriod)
	}

	result, err := domain.NewMarketAnalysis(series)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to build market analysis", logger.ErrorField(err))
		return nil, ErrNoMarketData
	}
	return result, nil
}

// historicalSeries walks the three tiers in order. A tier error is logged and
// treated as a miss for that tier only; an upstream error or empty response
// is terminal because there is no fourth tier.
func (s *marketService) historicalSeries(ctx context.Context) (domain.Series, error) {
	// Tier 1: fast cache. A hit is trusted as-is, including its scalars.
	cached, found, err := s.cacheRepo.GetAnalysis(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Fast cache unavailable for market data, falling through",
			logger.ErrorField(err))
	} else if found {
		return cached.Series, nil
	}

	// Tier 2: durable store, most recent snapshot, with write-back.
	if series, ok := s.seriesFromStore(ctx); ok {
		return series, nil
	}

	// Tier 3: live provider. Fetch a padded window so weekends and holidays
	// still leave enough bars, then trim to the analysis window.
	fetched, err := s.priceRepo.FetchDailyBars(ctx, s.cfg.Market.Symbol, s.cfg.Market.AnalysisPeriodDays+10)
	if err != nil {
		return nil, err
	}
	if len(fetched) == 0 {
		return nil, nil
	}

	series := analysis.ApplyMovingAverages(
		fetched.Tail(s.cfg.Market.AnalysisPeriodDays),
		s.cfg.Market.ShortMAPeriod,
		s.cfg.Market.LongMAPeriod,
	)

	result, err := domain.NewMarketAnalysis(series)
	if err != nil {
		return nil, err
	}

	s.writeBack(ctx, result)
	s.appendSnapshot(ctx, result)

	return series, nil
}

// seriesFromStore probes the durable store and, on a hit, repopulates the
// fast cache with the reconstructed record.
func (s *marketService) seriesFromStore(ctx context.Context) (domain.Series, bool) {
	snapshot, found, err := s.snapshotRepo.GetLatest(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Durable store unavailable for market data, falling through",
			logger.ErrorField(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	series, err := codec.UnmarshalSeries(snapshot.Series)
	if err != nil {
		s.log.WarnContext(ctx, "Stored market series is malformed, treating as miss",
			logger.ErrorField(err))
		return nil, false
	}

	if !series.HasMovingAverages() {
		series = analysis.ApplyMovingAverages(series, s.cfg.Market.ShortMAPeriod, s.cfg.Market.LongMAPeriod)
	}

	result, err := domain.NewMarketAnalysis(series)
	if err != nil {
		s.log.WarnContext(ctx, "Stored market series cannot form an analysis, treating as miss",
			logger.ErrorField(err))
		return nil, false
	}

	s.writeBack(ctx, result)
	return series, true
}

func (s *marketService) writeBack(ctx context.Context, result *domain.MarketAnalysis) {
	if err := s.cacheRepo.SetAnalysis(ctx, result); err != nil {
		s.log.WarnContext(ctx, "Failed to write market analysis back to fast cache",
			logger.ErrorField(err))
	}
}

func (s *marketService) appendSnapshot(ctx context.Context, result *domain.MarketAnalysis) {
	data, err := codec.MarshalSeries(result.Series)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to serialize series for snapshot", logger.ErrorField(err))
		return
	}
	snapshot := &model.MarketSnapshot{
		Timestamp: time.Now(),
		Symbol:    s.cfg.Market.Symbol,
		Price:     result.CurrentPrice,
		ShortMA:   result.ShortMA,
		LongMA:    result.LongMA,
		IsBullish: result.IsBullish,
		Series:    data,
	}
	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		s.log.WarnContext(ctx, "Failed to append market snapshot to durable store",
			logger.ErrorField(err))
	}
}
