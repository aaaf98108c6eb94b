package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/linemk/cryptship/internal/config"
	"github.com/linemk/cryptship/internal/lib/cache"
	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 3 * time.Second

type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
	// Redis nil, если redis.url не задан
	Redis *redis.Client
	Cache cache.Store
}

// NewApp создаёт новый экземпляр App
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	// реализуем подключение к БД через DSN
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: log,
		DB:     db,
		Cache:  cache.NewMemoryStore(),
	}

	if cfg.Redis.URL != "" {
		client, err := connectRedis(cfg.Redis.URL)
		if err != nil {
			db.Close()
			return nil, err
		}
		app.Redis = client
		app.Cache = cache.NewRedisStore(client)
		log.Info("using redis for shared cache and login rate limit")
	} else {
		log.Info("redis not configured, using in-process cache")
	}

	return app, nil
}

func connectRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Close закрывает соединения с БД и redis
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Warn("failed to close database", sl.Err(err))
	}
}
