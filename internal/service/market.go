package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/linemk/cryptship/internal/clients/coingecko"
	"github.com/linemk/cryptship/internal/domain/catalog"
	"github.com/linemk/cryptship/internal/domain/models"
	"github.com/linemk/cryptship/internal/lib/cache"
	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"golang.org/x/sync/errgroup"
)

const (
	ProviderCoinbase  = "coinbase"
	ProviderCoingecko = "coingecko"
	ProviderBoth      = "coinbase+coingecko"

	snapshotCacheKey = "market:snapshot"
)

// SpotPriceClient быстрый источник цен, по одному запросу на актив
type SpotPriceClient interface {
	GetSpotPrice(ctx context.Context, asset string) (float64, error)
}

// MarketStatsClient источник изменений, объёмов и капитализации
type MarketStatsClient interface {
	GetMarkets(ctx context.Context, ids []string) ([]coingecko.Market, error)
}

type MarketConfig struct {
	SnapshotTTL      time.Duration
	ErrorBackoff     time.Duration
	PrimaryTimeout   time.Duration
	SecondaryTimeout time.Duration
}

type MarketServiceInterface interface {
	GetSnapshot(ctx context.Context) (*models.MarketSnapshot, error)
}

type MarketService struct {
	log       *slog.Logger
	primary   SpotPriceClient
	secondary MarketStatsClient
	cache     cache.Store
	cfg       MarketConfig
	now       func() time.Time

	mu          sync.Mutex
	lastFailure time.Time
}

func NewMarketService(log *slog.Logger, primary SpotPriceClient, secondary MarketStatsClient, store cache.Store, cfg MarketConfig) *MarketService {
	return &MarketService{
		log:       log,
		primary:   primary,
		secondary: secondary,
		cache:     store,
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithClock подменяет часы, используется в тестах
func (s *MarketService) WithClock(now func() time.Time) *MarketService {
	s.now = now
	return s
}

// GetSnapshot отдаёт свежий кэш, иначе опрашивает оба провайдера параллельно.
// При полном отказе отдаётся устаревший кэш, а без него ErrMarketUnavailable.
func (s *MarketService) GetSnapshot(ctx context.Context) (*models.MarketSnapshot, error) {
	const op = "service.MarketService.GetSnapshot"
	logger := s.log.With(slog.String("op", op))

	now := s.now()
	cached, entry, err := cache.Load[models.MarketSnapshot](ctx, s.cache, snapshotCacheKey)
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		logger.Warn("snapshot cache read failed", sl.Err(err))
	}
	hasCache := err == nil

	if hasCache && entry.Fresh(now, s.cfg.SnapshotTTL) {
		logger.Debug("serving snapshot from cache", slog.Duration("age", entry.Age(now)))
		return cached, nil
	}

	if !hasCache && s.inBackoff(now) {
		logger.Info("upstream recently failed, skipping fetch")
		return nil, ErrMarketUnavailable
	}

	var (
		prices  map[string]float64
		markets map[string]coingecko.Market
	)

	// ветки не отменяют друг друга: каждая сама ловит свою ошибку
	var g errgroup.Group
	g.Go(func() error {
		prices = s.fetchPrimary(ctx, logger)
		return nil
	})
	g.Go(func() error {
		markets = s.fetchSecondary(ctx, logger)
		return nil
	})
	_ = g.Wait()

	snapshot := s.merge(prices, markets, now)
	if snapshot == nil {
		s.recordFailure(now)
		if hasCache {
			logger.Warn("all providers failed, serving stale snapshot", slog.Duration("age", entry.Age(now)))
			return cached, nil
		}
		logger.Error("all providers failed and no cached snapshot")
		return nil, ErrMarketUnavailable
	}

	if err := cache.Save(ctx, s.cache, snapshotCacheKey, snapshot); err != nil {
		logger.Warn("failed to cache snapshot", sl.Err(err))
	}

	logger.Info("snapshot refreshed", slog.String("provider", snapshot.ProviderUsed), slog.Int("coins", len(snapshot.Coins)))
	return snapshot, nil
}

func (s *MarketService) inBackoff(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.lastFailure.IsZero() && now.Sub(s.lastFailure) < s.cfg.ErrorBackoff
}

func (s *MarketService) recordFailure(now time.Time) {
	s.mu.Lock()
	s.lastFailure = now
	s.mu.Unlock()
}

// fetchPrimary цены по всем активам; nil если не получено ни одной
func (s *MarketService) fetchPrimary(ctx context.Context, logger *slog.Logger) map[string]float64 {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.PrimaryTimeout)
	defer cancel()

	ids := catalog.ChainIDs()
	results := make([]*float64, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			price, err := s.primary.GetSpotPrice(ctx, id)
			if err != nil {
				logger.Warn("primary provider failed for asset", slog.String("asset", id), sl.Err(err))
				return nil
			}
			results[i] = &price
			return nil
		})
	}
	_ = g.Wait()

	prices := make(map[string]float64, len(ids))
	for i, id := range ids {
		if results[i] != nil {
			prices[id] = *results[i]
		}
	}
	if len(prices) == 0 {
		return nil
	}
	return prices
}

// fetchSecondary рыночная статистика по id цепочки; nil при ошибке
func (s *MarketService) fetchSecondary(ctx context.Context, logger *slog.Logger) map[string]coingecko.Market {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SecondaryTimeout)
	defer cancel()

	chains := catalog.Chains()
	geckoIDs := make([]string, 0, len(chains))
	byGeckoID := make(map[string]string, len(chains))
	for _, c := range chains {
		geckoIDs = append(geckoIDs, c.CoingeckoID)
		byGeckoID[c.CoingeckoID] = c.ID
	}

	list, err := s.secondary.GetMarkets(ctx, geckoIDs)
	if err != nil {
		logger.Warn("secondary provider failed", sl.Err(err))
		return nil
	}

	markets := make(map[string]coingecko.Market, len(list))
	for _, m := range list {
		if chainID, ok := byGeckoID[m.ID]; ok {
			markets[chainID] = m
		}
	}
	if len(markets) == 0 {
		logger.Warn("secondary provider returned no tracked coins")
		return nil
	}
	return markets
}

// merge собирает срез; nil если данных нет ни от одного провайдера
func (s *MarketService) merge(prices map[string]float64, markets map[string]coingecko.Market, now time.Time) *models.MarketSnapshot {
	snapshot := &models.MarketSnapshot{
		OK:        true,
		Coins:     make(map[string]*models.CoinQuote),
		Timestamp: now.UTC(),
	}
	fallbackUpdated := now.UTC().Format(time.RFC3339)

	usedPrimary, usedSecondary := false, false
	for id, price := range prices {
		q := &models.CoinQuote{Price: float64Ptr(price), LastUpdated: fallbackUpdated}
		if m, ok := markets[id]; ok {
			applyMarketStats(q, m)
			usedSecondary = true
		}
		snapshot.Coins[id] = q
		usedPrimary = true
	}
	// монеты, которые основной провайдер не отдал, берём у вторичного целиком
	for id, m := range markets {
		if _, ok := snapshot.Coins[id]; ok {
			continue
		}
		q := &models.CoinQuote{Price: m.CurrentPrice, LastUpdated: fallbackUpdated}
		applyMarketStats(q, m)
		snapshot.Coins[id] = q
		usedSecondary = true
	}

	switch {
	case usedPrimary && usedSecondary:
		snapshot.ProviderUsed = ProviderBoth
	case usedPrimary:
		snapshot.ProviderUsed = ProviderCoinbase
	case usedSecondary:
		snapshot.ProviderUsed = ProviderCoingecko
	default:
		return nil
	}

	for id, q := range snapshot.Coins {
		applyIndicators(id, q)
	}
	return snapshot
}

func applyMarketStats(q *models.CoinQuote, m coingecko.Market) {
	q.Change24h = m.PriceChangePercentage24h
	q.Change7d = m.PriceChangePercentage7d
	q.Volume24h = m.TotalVolume
	q.MarketCap = m.MarketCap
	if m.LastUpdated != "" {
		q.LastUpdated = m.LastUpdated
	}
}

// applyIndicators статические индикаторы сети. Это заглушки, не живые измерения.
func applyIndicators(chainID string, q *models.CoinQuote) {
	switch chainID {
	case catalog.ChainSOL:
		q.FeeLevel = "Low"
		q.FeeLevelValue = "~0.000005 SOL"
		q.Activity = "High"
	case catalog.ChainETH:
		q.GasIndicator = "Medium"
		q.GasValue = "~25 gwei"
		q.BaseFee = "Moderate"
	case catalog.ChainBTC:
		q.FeeRate = "Low"
		q.FeeRateValue = "~8 sat/vB"
		q.MempoolLevel = "Normal"
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}

var _ MarketServiceInterface = (*MarketService)(nil)

