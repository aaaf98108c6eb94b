// Package coinbase клиент публичного API спотовых цен Coinbase
package coinbase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.coinbase.com/v2"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // запросов в секунду
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

type spotResponse struct {
	Data struct {
		Amount   string `json:"amount"`
		Base     string `json:"base"`
		Currency string `json:"currency"`
	} `json:"data"`
}

// GetSpotPrice возвращает спотовую цену актива в USD, asset - тикер (btc, eth, sol)
func (c *Client) GetSpotPrice(ctx context.Context, asset string) (float64, error) {
	const op = "coinbase.GetSpotPrice"

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%s: rate limit wait: %w", op, err)
	}

	pair := strings.ToUpper(asset) + "-USD"
	reqURL := fmt.Sprintf("%s/prices/%s/spot", c.baseURL, pair)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Warn("coinbase request failed", slog.String("pair", pair), sl.Err(err), slog.Duration("elapsed", elapsed))
		return 0, fmt.Errorf("%s: failed to execute request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("coinbase non-OK response", slog.String("pair", pair), slog.Int("status", resp.StatusCode))
		return 0, fmt.Errorf("%s: status %d for %s", op, resp.StatusCode, pair)
	}

	var sr spotResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return 0, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	price, err := strconv.ParseFloat(sr.Data.Amount, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: bad amount %q for %s: %w", op, sr.Data.Amount, pair, err)
	}

	c.logger.Debug("coinbase spot price", slog.String("pair", pair), slog.Float64("price", price), slog.Duration("elapsed", elapsed))
	return price, nil
}
