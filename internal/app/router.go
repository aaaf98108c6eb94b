package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/cryptship/internal/app/handlers"
	"github.com/linemk/cryptship/internal/clients/coinbase"
	"github.com/linemk/cryptship/internal/clients/coingecko"
	"github.com/linemk/cryptship/internal/clients/rss"
	"github.com/linemk/cryptship/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/cryptship/internal/lib/logger/handlers/urllog"
	"github.com/linemk/cryptship/internal/lib/ratelimit"
	"github.com/linemk/cryptship/internal/service"
	"github.com/linemk/cryptship/internal/storage"
)

// Router собирает репозитории, сервисы и маршруты /api
func (a *App) Router() http.Handler {
	cfg := a.Config
	log := a.Logger

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// реализация слоев по работе с БД по каждому направлению
	userRepo := storage.NewUserRepository(a.DB)
	progressRepo := storage.NewProgressRepository(a.DB)
	resetCodeRepo := storage.NewResetCodeRepository(a.DB)

	coinbaseClient := coinbase.NewClient(
		coinbase.WithBaseURL(cfg.Market.CoinbaseBaseURL),
		coinbase.WithLogger(log),
		coinbase.WithRateLimit(cfg.Market.RequestsPerSecond),
	)
	coingeckoClient := coingecko.NewClient(
		coingecko.WithBaseURL(cfg.Market.CoingeckoBaseURL),
		coingecko.WithLogger(log),
		coingecko.WithRateLimit(cfg.Market.RequestsPerSecond),
	)
	rssClient := rss.NewClient(
		rss.WithLogger(log),
		rss.WithTimeout(cfg.News.FetchTimeout),
	)

	authService := service.NewAuthService(log, userRepo, cfg.JWT.Secret, cfg.TokenTTL())
	resetService := service.NewResetService(log, a.DB, userRepo, resetCodeRepo, service.NewLogNotifier(log),
		cfg.Reset.CodeTTL, cfg.Reset.MaxRequests, cfg.Reset.Window)
	progressService := service.NewProgressService(log, progressRepo)
	marketService := service.NewMarketService(log, coinbaseClient, coingeckoClient, a.Cache, service.MarketConfig{
		SnapshotTTL:      cfg.Market.SnapshotTTL,
		ErrorBackoff:     cfg.Market.ErrorBackoff,
		PrimaryTimeout:   cfg.Market.PrimaryTimeout,
		SecondaryTimeout: cfg.Market.SecondaryTimeout,
	})
	chartService := service.NewChartService(log, coingeckoClient, a.Cache, service.ChartConfig{
		TTL:     cfg.Market.ChartTTL,
		Timeout: cfg.Market.ChartTimeout,
	})
	newsService := service.NewNewsService(log, rssClient, a.Cache, service.NewsConfig{
		Mode:         cfg.News.Mode,
		TTL:          cfg.News.TTL,
		FetchTimeout: cfg.News.FetchTimeout,
		Limit:        cfg.News.Limit,
	})

	cookie := handlers.SessionCookie{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
		TTL:    cfg.TokenTTL(),
	}
	loginLimiter := ratelimit.LoginLimiter(log, a.Redis, cfg.Redis.LoginAttemptsPerMinute)
	jwtMW := jwtmiddleware.NewJWTMiddleware(log, cfg.JWT.Secret, cfg.Session.CookieName)

	router.Route("/api", func(r chi.Router) {
		// эндпоинты аутентификации
		r.Post("/auth/register", handlers.RegisterHandler(log, authService, cookie))
		r.With(loginLimiter).Post("/auth/login", handlers.LoginHandler(log, authService, cookie))
		r.Post("/auth/logout", handlers.LogoutHandler(log, cookie))
		r.Post("/auth/request-reset", handlers.RequestResetHandler(log, resetService, !cfg.IsProduction()))
		r.Post("/auth/reset-password", handlers.ResetPasswordHandler(log, resetService))

		// публичные рыночные данные и справочник
		r.Get("/market-snapshot", handlers.MarketSnapshotHandler(log, marketService))
		r.Get("/chart-data", handlers.ChartDataHandler(log, chartService))
		r.Get("/news", handlers.NewsHandler(log, newsService))
		r.Get("/chains", handlers.ChainsHandler(log))
		r.Get("/chains/{chain}/waypoints", handlers.WaypointsHandler(log))

		r.Group(func(r chi.Router) {
			r.Use(jwtMW)
			r.Get("/auth/me", handlers.MeHandler(log, authService))
			r.Post("/auth/reminders", handlers.ReminderHandler(log, authService))
			r.Get("/progress", handlers.GetProgressHandler(log, progressService))
			r.Get("/progress/next", handlers.NextWaypointsHandler(log, progressService))
			r.Post("/progress", handlers.SetProgressHandler(log, progressService))
			r.Delete("/progress/{chain}", handlers.ResetProgressHandler(log, progressService))
		})
	})

	return router
}
