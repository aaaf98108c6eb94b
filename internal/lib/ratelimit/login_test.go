package ratelimit_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/linemk/cryptship/internal/lib/ratelimit"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doLogin(h http.Handler) int {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func TestLoginLimiter_Blocks(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := ratelimit.LoginLimiter(logger, client, 2)(okHandler())

	assert.Equal(t, http.StatusOK, doLogin(h))
	assert.Equal(t, http.StatusOK, doLogin(h))
	assert.Equal(t, http.StatusTooManyRequests, doLogin(h))

	// счётчик живёт минуту
	assert.True(t, mr.TTL("rl:login:10.0.0.1") > 0)

	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, doLogin(h))
}

func TestLoginLimiter_NoRedis(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := ratelimit.LoginLimiter(logger, nil, 1)(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doLogin(h))
	}
}

func TestLoginLimiter_FailOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := ratelimit.LoginLimiter(logger, client, 1)(okHandler())

	assert.Equal(t, http.StatusOK, doLogin(h))
	assert.Equal(t, http.StatusOK, doLogin(h))
}
