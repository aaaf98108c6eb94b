package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/linemk/cryptship/internal/config"
	"github.com/stretchr/testify/assert"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "config_test_*.yaml")
	assert.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	assert.NoError(t, err)
	assert.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

func TestMustLoadByPath_Success(t *testing.T) {
	// Устанавливаем обязательные переменные окружения
	t.Setenv("DB_PASSWORD", "mypassword")
	t.Setenv("JWT_SECRET", "mysecret")

	content := `
env: "local"
http_server:
  address: "localhost:8080"
  timeout: "4s"
  idle_timeout: "60s"
database:
  host: "localhost"
  port: 5432
  user: "postgres"
  name: "cryptship"
jwt:
  token_ttl: 60
session:
  cookie_name: "sid"
  secure: true
migrations:
  path: "./migrations"
market:
  snapshot_ttl: "30s"
  primary_timeout: "2s"
news:
  mode: "curated"
  limit: 5
redis:
  url: "redis://localhost:6379/0"
`
	cfg := config.MustLoadByPath(writeTempConfig(t, content))

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost:8080", cfg.HTTPServer.Address)
	assert.Equal(t, 4*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "mypassword", cfg.Database.Password)
	assert.Equal(t, "cryptship", cfg.Database.Name)
	assert.Equal(t, "mysecret", cfg.JWT.Secret)
	assert.Equal(t, 60*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, "./migrations", cfg.Migrations.Path)
	assert.Equal(t, 30*time.Second, cfg.Market.SnapshotTTL)
	assert.Equal(t, 2*time.Second, cfg.Market.PrimaryTimeout)
	assert.Equal(t, "curated", cfg.News.Mode)
	assert.Equal(t, 5, cfg.News.Limit)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.False(t, cfg.IsProduction())
}

func TestMustLoadByPath_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "mypassword")
	t.Setenv("JWT_SECRET", "mysecret")

	content := `
env: "prod"
database:
  user: "postgres"
  name: "cryptship"
`
	cfg := config.MustLoadByPath(writeTempConfig(t, content))

	// значения по умолчанию повторяют исходное поведение сервиса
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, "auth_token", cfg.Session.CookieName)
	assert.Equal(t, 60*time.Second, cfg.Market.SnapshotTTL)
	assert.Equal(t, 10*time.Second, cfg.Market.ErrorBackoff)
	assert.Equal(t, 3500*time.Millisecond, cfg.Market.PrimaryTimeout)
	assert.Equal(t, 4*time.Second, cfg.Market.SecondaryTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Market.ChartTTL)
	assert.Equal(t, "rss", cfg.News.Mode)
	assert.Equal(t, 15*time.Minute, cfg.News.TTL)
	assert.Equal(t, 7, cfg.News.Limit)
	assert.Equal(t, 10*time.Minute, cfg.Reset.CodeTTL)
	assert.Equal(t, 3, cfg.Reset.MaxRequests)
	assert.Equal(t, 10*time.Minute, cfg.Reset.Window)
	assert.Empty(t, cfg.Redis.URL)
}

func TestMustLoadByPath_FileNotFound(t *testing.T) {
	// Ожидаем панику, если файла не существует
	assert.Panics(t, func() {
		config.MustLoadByPath("non_existent_config.yaml")
	})
}
