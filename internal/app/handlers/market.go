package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/cryptship/internal/lib/api/response"
	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"github.com/linemk/cryptship/internal/service"
)

// SnapshotUnavailableResponse тело 503 для среза рынка
type SnapshotUnavailableResponse struct {
	OK          bool    `json:"ok"`
	Error       string  `json:"error"`
	LastUpdated *string `json:"lastUpdated"`
}

// MarketSnapshotHandler обрабатывает GET /api/market-snapshot
func MarketSnapshotHandler(log *slog.Logger, marketService service.MarketServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MarketSnapshotHandler"
		logger := log.With(slog.String("op", op))

		snapshot, err := marketService.GetSnapshot(r.Context())
		if err != nil {
			logger.Warn("market snapshot unavailable", sl.Err(err))
			response.JSON(w, logger, http.StatusServiceUnavailable, SnapshotUnavailableResponse{
				OK:    false,
				Error: serviceErrors[service.ErrMarketUnavailable].msg,
			})
			return
		}

		response.JSON(w, logger, http.StatusOK, snapshot)
	}
}

// ChartDataHandler обрабатывает GET /api/chart-data?coin=&period=|days=
func ChartDataHandler(log *slog.Logger, chartService service.ChartServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ChartDataHandler"
		logger := log.With(slog.String("op", op))

		q := r.URL.Query()
		coin := q.Get("coin")
		if coin == "" {
			coin = service.DefaultChartCoin
		}

		period, err := service.ParsePeriod(q.Get("period"), q.Get("days"))
		if err != nil {
			writeServiceError(w, logger, err, msgInternal)
			return
		}

		series, err := chartService.GetChart(r.Context(), coin, period)
		if err != nil {
			writeServiceError(w, logger, err, msgInternal)
			return
		}

		response.JSON(w, logger, http.StatusOK, series)
	}
}

// NewsHandler обрабатывает GET /api/news?scope=
func NewsHandler(log *slog.Logger, newsService service.NewsServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.NewsHandler"
		logger := log.With(slog.String("op", op))

		scope := r.URL.Query().Get("scope")
		if scope == "" {
			scope = service.ScopeGlobal
		}

		result, err := newsService.GetHeadlines(r.Context(), scope)
		if err != nil {
			writeServiceError(w, logger, err, msgInternal)
			return
		}

		response.JSON(w, logger, http.StatusOK, result)
	}
}
