// Package coingecko клиент публичного API CoinGecko: рыночная статистика и история цен
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.coingecko.com/api/v3"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Market строка ответа /coins/markets; отсутствующие числа остаются nil
type Market struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	TotalVolume              *float64 `json:"total_volume"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h_in_currency"`
	PriceChangePercentage7d  *float64 `json:"price_change_percentage_7d_in_currency"`
	LastUpdated              string   `json:"last_updated"`
}

// GetMarkets рыночные данные по списку id CoinGecko (bitcoin, ethereum, solana)
func (c *Client) GetMarkets(ctx context.Context, ids []string) ([]Market, error) {
	const op = "coingecko.GetMarkets"

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("ids", strings.Join(ids, ","))
	q.Set("price_change_percentage", "24h,7d")

	var markets []Market
	if err := c.get(ctx, "/coins/markets", q, &markets); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return markets, nil
}

type marketChartResponse struct {
	Prices [][]json.Number `json:"prices"`
}

// Point пара (время в мс, цена)
type Point struct {
	TimestampMs int64
	Price       float64
}

// GetMarketChart история цены в USD за days дней; битые пары пропускаются
func (c *Client) GetMarketChart(ctx context.Context, id string, days int) ([]Point, error) {
	const op = "coingecko.GetMarketChart"

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", strconv.Itoa(days))

	var mc marketChartResponse
	if err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", q, &mc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	points := make([]Point, 0, len(mc.Prices))
	for _, pair := range mc.Prices {
		if len(pair) != 2 {
			continue
		}
		ts, err := pair[0].Float64()
		if err != nil {
			continue
		}
		price, err := pair[1].Float64()
		if err != nil {
			continue
		}
		points = append(points, Point{TimestampMs: int64(ts), Price: price})
	}
	return points, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Warn("coingecko request failed", slog.String("path", path), sl.Err(err), slog.Duration("elapsed", elapsed))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("coingecko non-OK response", slog.String("path", path), slog.Int("status", resp.StatusCode))
		return fmt.Errorf("coingecko error: status %d for %s", resp.StatusCode, path)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("coingecko call", slog.String("path", path), slog.Duration("elapsed", elapsed))
	return nil
}
