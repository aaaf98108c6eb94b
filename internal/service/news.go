package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/cryptship/internal/clients/rss"
	"github.com/linemk/cryptship/internal/domain/models"
	"github.com/linemk/cryptship/internal/lib/cache"
	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"golang.org/x/sync/errgroup"
)

const (
	ScopeGlobal = "global"

	NewsModeRSS     = "rss"
	NewsModeCurated = "curated"

	NewsProviderRSS     = "RSS Aggregator (CoinDesk/Cointelegraph)"
	NewsProviderCurated = "Curated"

	bulletCount = 3
)

// FeedFetcher загружает элементы ленты
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]rss.Item, error)
}

// DefaultFeeds ленты по скоупам
var DefaultFeeds = map[string][]string{
	ScopeGlobal: {
		"https://www.coindesk.com/arc/outboundfeeds/rss/",
		"https://cointelegraph.com/rss",
	},
	"btc": {
		"https://cointelegraph.com/rss/tag/bitcoin",
		"https://www.coindesk.com/arc/outboundfeeds/rss/?category=bitcoin",
	},
	"eth": {
		"https://cointelegraph.com/rss/tag/ethereum",
		"https://www.coindesk.com/arc/outboundfeeds/rss/?category=ethereum",
	},
	"sol": {
		"https://cointelegraph.com/rss/tag/solana",
		"https://www.coindesk.com/arc/outboundfeeds/rss/?category=solana",
	},
}

// IsScope сообщает, поддерживается ли скоуп новостей
func IsScope(scope string) bool {
	_, ok := DefaultFeeds[scope]
	return ok
}

type NewsConfig struct {
	Mode         string
	TTL          time.Duration
	FetchTimeout time.Duration
	Limit        int
}

type NewsServiceInterface interface {
	GetHeadlines(ctx context.Context, scope string) (*models.NewsResult, error)
}

type NewsService struct {
	log     *slog.Logger
	fetcher FeedFetcher
	cache   cache.Store
	feeds   map[string][]string
	cfg     NewsConfig
	now     func() time.Time
}

func NewNewsService(log *slog.Logger, fetcher FeedFetcher, store cache.Store, cfg NewsConfig) *NewsService {
	if cfg.Limit <= 0 {
		cfg.Limit = 7
	}
	return &NewsService{
		log:     log,
		fetcher: fetcher,
		cache:   store,
		feeds:   DefaultFeeds,
		cfg:     cfg,
		now:     time.Now,
	}
}

// WithFeeds подменяет ленты, используется в тестах
func (s *NewsService) WithFeeds(feeds map[string][]string) *NewsService {
	s.feeds = feeds
	return s
}

func (s *NewsService) WithClock(now func() time.Time) *NewsService {
	s.now = now
	return s
}

func (s *NewsService) GetHeadlines(ctx context.Context, scope string) (*models.NewsResult, error) {
	const op = "service.NewsService.GetHeadlines"
	logger := s.log.With(slog.String("op", op), slog.String("scope", scope))

	if !IsScope(scope) {
		return nil, ErrInvalidScope
	}

	now := s.now()
	if s.cfg.Mode == NewsModeCurated {
		return curatedResult(scope, now), nil
	}

	key := "news:" + scope
	cached, entry, err := cache.Load[models.NewsResult](ctx, s.cache, key)
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		logger.Warn("news cache read failed", sl.Err(err))
	}
	hasCache := err == nil
	if hasCache && entry.Fresh(now, s.cfg.TTL) {
		return cached, nil
	}

	items := s.fetchAll(ctx, s.feeds[scope], logger)
	headlines := buildHeadlines(items, s.cfg.Limit, now)

	if len(headlines) == 0 {
		// пустую подборку не кэшируем
		if hasCache {
			logger.Warn("no headlines fetched, serving stale result")
			return cached, nil
		}
		logger.Warn("no headlines fetched")
	}

	result := &models.NewsResult{
		Scope:       scope,
		Headlines:   headlines,
		Provider:    NewsProviderRSS,
		LastFetched: now.UTC(),
	}
	if scope == ScopeGlobal {
		result.Bullets = bullets(headlines)
	}

	if len(headlines) > 0 {
		if err := cache.Save(ctx, s.cache, key, result); err != nil {
			logger.Warn("failed to cache news", sl.Err(err))
		}
	}
	return result, nil
}

type feedItem struct {
	rss.Item
	feedURL string
}

// fetchAll опрашивает ленты параллельно; упавшие ленты просто пропускаются
func (s *NewsService) fetchAll(ctx context.Context, urls []string, logger *slog.Logger) []feedItem {
	results := make([][]feedItem, len(urls))

	var g errgroup.Group
	for i, u := range urls {
		i, u := i, u // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
			defer cancel()

			items, err := s.fetcher.Fetch(fctx, u)
			if err != nil {
				logger.Warn("failed fetching feed", slog.String("url", u), sl.Err(err))
				return nil
			}
			out := make([]feedItem, 0, len(items))
			for _, it := range items {
				out = append(out, feedItem{Item: it, feedURL: u})
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	var all []feedItem
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// buildHeadlines дедупликация по url (или заголовку), сортировка по дате и обрезка
func buildHeadlines(items []feedItem, limit int, now time.Time) []models.Headline {
	seen := make(map[string]struct{}, len(items))
	unique := make([]feedItem, 0, len(items))
	for _, it := range items {
		key := it.Link
		if key == "" {
			key = it.Title
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if it.Published.IsZero() {
			it.Published = now
		}
		unique = append(unique, it)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Published.After(unique[j].Published)
	})
	if len(unique) > limit {
		unique = unique[:limit]
	}

	headlines := make([]models.Headline, 0, len(unique))
	for _, it := range unique {
		link := it.Link
		if link == "" {
			link = it.feedURL
		}
		headlines = append(headlines, models.Headline{
			ID:          headlineID(it.Link, it.Title),
			Title:       it.Title,
			URL:         it.Link,
			Source:      DetermineSource(link),
			PublishedAt: it.Published.UTC(),
			Timestamp:   TimeAgo(now, it.Published),
		})
	}
	return headlines
}

// headlineID стабильный id: одна и та же новость получает один id между загрузками
func headlineID(link, title string) string {
	name := link
	if name == "" {
		name = title
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func bullets(headlines []models.Headline) []string {
	n := min(bulletCount, len(headlines))
	out := make([]string, 0, n)
	for _, h := range headlines[:n] {
		out = append(out, h.Title+".")
	}
	return out
}

// DetermineSource название издания по ссылке
func DetermineSource(link string) string {
	if link == "" {
		return "Crypto News"
	}
	lower := strings.ToLower(link)
	switch {
	case strings.Contains(lower, "coindesk"):
		return "CoinDesk"
	case strings.Contains(lower, "cointelegraph"):
		return "Cointelegraph"
	}
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return "Crypto News"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// TimeAgo метка относительного времени
func TimeAgo(now, published time.Time) string {
	hours := now.Sub(published).Hours()
	switch {
	case hours < 1:
		return "Just now"
	case hours < 2:
		return "1 hour ago"
	default:
		return fmt.Sprintf("%d hours ago", int(hours))
	}
}

var _ NewsServiceInterface = (*NewsService)(nil)
