package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/linemk/cryptship/internal/domain/models"
	"github.com/linemk/cryptship/internal/lib/api/response"
	"github.com/linemk/cryptship/internal/service"
)

// CredentialsRequest тело запросов регистрации и входа
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserSummary краткое представление пользователя
type UserSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// UserProfile полное представление пользователя для /auth/me
type UserProfile struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"createdAt"`
	LastLogin     time.Time `json:"lastLogin"`
	LastVisit     time.Time `json:"lastVisit"`
	ReminderOptIn bool      `json:"reminderOptIn"`
}

// AuthResponse ответ регистрации и входа
type AuthResponse struct {
	User    UserSummary `json:"user"`
	Message string      `json:"message,omitempty"`
}

// MeResponse ответ /auth/me
type MeResponse struct {
	User UserProfile `json:"user"`
}

// MessageResponse ответ с одним сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// ReminderRequest переключение напоминаний
type ReminderRequest struct {
	OptIn *bool `json:"optIn" validate:"required"`
}

var registerMessages = map[string]string{
	"Email.required":    "Email and password are required",
	"Password.required": "Email and password are required",
	"Email.email":       "Invalid email format",
	"Password.min":      "Password must be at least 6 characters",
}

// RegisterHandler обрабатывает POST /api/auth/register
func RegisterHandler(log *slog.Logger, authService service.AuthServiceInterface, cookie SessionCookie) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req CredentialsRequest
		if !decodeAndValidate(w, r, logger, &req, registerMessages, "Email and password are required") {
			return
		}

		user, token, err := authService.Register(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, logger, err, "Registration failed")
			return
		}

		cookie.set(w, token)
		response.JSON(w, logger, http.StatusOK, AuthResponse{
			User:    summary(user),
			Message: "Account created successfully",
		})
	}
}

// LoginRequest тело запроса входа; длину пароля при входе не проверяем
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler обрабатывает POST /api/auth/login
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface, cookie SessionCookie) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if !decodeAndValidate(w, r, logger, &req, nil, "Email and password are required") {
			return
		}

		user, token, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, logger, err, "Login failed")
			return
		}

		cookie.set(w, token)
		response.JSON(w, logger, http.StatusOK, AuthResponse{User: summary(user)})
	}
}

// MeHandler обрабатывает GET /api/auth/me
func MeHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MeHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := requireUser(w, r, logger)
		if !ok {
			return
		}

		user, err := authService.Me(r.Context(), userID)
		if err != nil {
			writeServiceError(w, logger, err, msgInternal)
			return
		}

		response.JSON(w, logger, http.StatusOK, MeResponse{User: UserProfile{
			ID:            user.ID,
			Email:         user.Email,
			CreatedAt:     user.CreatedAt,
			LastLogin:     user.LastLogin,
			LastVisit:     user.LastVisit,
			ReminderOptIn: user.ReminderOptIn,
		}})
	}
}

// LogoutHandler обрабатывает POST /api/auth/logout
func LogoutHandler(log *slog.Logger, cookie SessionCookie) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LogoutHandler"
		logger := log.With(slog.String("op", op))

		cookie.clear(w)
		response.JSON(w, logger, http.StatusOK, MessageResponse{Message: "Logged out"})
	}
}

// ReminderHandler обрабатывает POST /api/auth/reminders
func ReminderHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ReminderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := requireUser(w, r, logger)
		if !ok {
			return
		}

		var req ReminderRequest
		if !decodeAndValidate(w, r, logger, &req, nil, "optIn is required") {
			return
		}

		if err := authService.SetReminder(r.Context(), userID, *req.OptIn); err != nil {
			writeServiceError(w, logger, err, msgInternal)
			return
		}

		response.JSON(w, logger, http.StatusOK, struct {
			ReminderOptIn bool `json:"reminderOptIn"`
		}{*req.OptIn})
	}
}

func summary(u *models.User) UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email}
}
