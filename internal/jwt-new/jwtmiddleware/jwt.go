package jwtmiddleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	security "github.com/linemk/cryptship/internal/jwt-new"
	"github.com/linemk/cryptship/internal/lib/api/response"
	"github.com/linemk/cryptship/internal/lib/logger/sl"
)

type contextKey string

const UserIDKey contextKey = "userID"

// NewJWTMiddleware создаёт middleware для проверки JWT.
// Токен берётся из cookie сессии, а если её нет - из заголовка Authorization: Bearer.
func NewJWTMiddleware(log *slog.Logger, secret, cookieName string) func(http.Handler) http.Handler {
	if secret == "" {
		panic("JWT secret is not set")
	}
	log = log.With(slog.String("component", "jwtmiddleware"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := extractToken(r, cookieName)
			if !ok {
				response.Error(w, log, http.StatusUnauthorized, "Not authenticated")
				return
			}

			userID, err := security.ParseToken(tokenStr, secret)
			if err != nil {
				log.Debug("token rejected", sl.Err(err))
				response.Error(w, log, http.StatusUnauthorized, "Invalid token")
				return
			}

			// Устанавливаем userID в контекст запроса
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request, cookieName string) (string, bool) {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value, true
	}

	// формат: "Bearer <token>"
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
		return parts[1], true
	}
	return "", false
}

// FromContext извлекает userID из контекста.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
