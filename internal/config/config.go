package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Session    SessionConfig    `yaml:"session"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Market     MarketConfig     `yaml:"market"`
	News       NewsConfig       `yaml:"news"`
	Reset      ResetConfig      `yaml:"reset"`
	Redis      RedisConfig      `yaml:"redis"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DatabaseConfig структура по работе с БД
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"-" env:"DB_PASSWORD" env-required:"true"`
	Name     string `yaml:"name" env-required:"true"`
}

// JWTConfig настройка jwt, TokenTTL в минутах (по умолчанию 7 дней)
type JWTConfig struct {
	Secret   string `yaml:"-" env:"JWT_SECRET" env-required:"true"`
	TokenTTL int    `yaml:"token_ttl" env-default:"10080"`
}

// SessionConfig настройка cookie с токеном сессии
type SessionConfig struct {
	CookieName string `yaml:"cookie_name" env-default:"auth_token"`
	Secure     bool   `yaml:"secure" env-default:"false"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// MarketConfig настройка провайдеров рыночных данных
type MarketConfig struct {
	CoingeckoBaseURL  string        `yaml:"coingecko_base_url" env:"COINGECKO_BASE_URL" env-default:"https://api.coingecko.com/api/v3"`
	CoinbaseBaseURL   string        `yaml:"coinbase_base_url" env:"COINBASE_BASE_URL" env-default:"https://api.coinbase.com/v2"`
	SnapshotTTL       time.Duration `yaml:"snapshot_ttl" env-default:"60s"`
	ErrorBackoff      time.Duration `yaml:"error_backoff" env-default:"10s"`
	PrimaryTimeout    time.Duration `yaml:"primary_timeout" env-default:"3500ms"`
	SecondaryTimeout  time.Duration `yaml:"secondary_timeout" env-default:"4s"`
	ChartTTL          time.Duration `yaml:"chart_ttl" env-default:"5m"`
	ChartTimeout      time.Duration `yaml:"chart_timeout" env-default:"4s"`
	RequestsPerSecond int           `yaml:"requests_per_second" env-default:"5"`
}

// NewsConfig настройка агрегатора новостей; mode: rss или curated
type NewsConfig struct {
	Mode         string        `yaml:"mode" env-default:"rss"`
	TTL          time.Duration `yaml:"ttl" env-default:"15m"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env-default:"4s"`
	Limit        int           `yaml:"limit" env-default:"7"`
}

// ResetConfig настройка кодов сброса пароля
type ResetConfig struct {
	CodeTTL     time.Duration `yaml:"code_ttl" env-default:"10m"`
	MaxRequests int           `yaml:"max_requests" env-default:"3"`
	Window      time.Duration `yaml:"window" env-default:"10m"`
}

// RedisConfig - необязательный redis для общего кэша и лимита попыток входа
type RedisConfig struct {
	URL                    string `yaml:"url" env:"REDIS_URL"`
	LoginAttemptsPerMinute int    `yaml:"login_attempts_per_minute" env-default:"10"`
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}

	return &cfg
}

// IsProduction сообщает, запущено ли приложение в боевом окружении
func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

// TokenTTL возвращает время жизни токена сессии
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TokenTTL) * time.Minute
}
