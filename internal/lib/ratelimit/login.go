package ratelimit

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/linemk/cryptship/internal/lib/api/response"
	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultLoginAttemptsPerMinute = 5
	loginKeyPrefix                = "rl:login:"
)

// LoginLimiter ограничивает число попыток входа с одного адреса.
// Без redis ничего не ограничивает; при ошибках redis пропускает запрос.
func LoginLimiter(log *slog.Logger, client *redis.Client, maxPerMin int) func(http.Handler) http.Handler {
	if maxPerMin <= 0 {
		maxPerMin = DefaultLoginAttemptsPerMinute
	}
	log = log.With(slog.String("component", "ratelimit.LoginLimiter"))

	return func(next http.Handler) http.Handler {
		if client == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := loginKeyPrefix + clientIP(r)

			cnt, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				log.Warn("rate limit check failed, letting request through", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if cnt == 1 {
				client.Expire(r.Context(), key, time.Minute)
			}
			if cnt > int64(maxPerMin) {
				log.Info("too many login attempts", slog.String("key", key), slog.Int64("count", cnt))
				w.Header().Set("Retry-After", fmt.Sprintf("%d", 60))
				response.Error(w, log, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
