package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/cryptship/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/cryptship/internal/lib/api/response"
	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"github.com/linemk/cryptship/internal/service"
)

var validate = validator.New()

const (
	msgInternal         = "Internal server error"
	msgInvalidRequest   = "Invalid request"
	msgNotAuthenticated = "Not authenticated"
)

type apiError struct {
	status int
	msg    string
}

// ошибки сервисов и их представление для клиента
var serviceErrors = map[error]apiError{
	service.ErrInvalidCredentials:   {http.StatusUnauthorized, "Invalid email or password"},
	service.ErrUnauthorized:         {http.StatusUnauthorized, msgNotAuthenticated},
	service.ErrEmailTaken:           {http.StatusConflict, "Email already registered"},
	service.ErrPasswordTooShort:     {http.StatusBadRequest, "Password must be at least 6 characters"},
	service.ErrTooManyResetRequests: {http.StatusTooManyRequests, "Too many reset requests. Please wait 10 minutes."},
	service.ErrInvalidEmailOrCode:   {http.StatusBadRequest, "Invalid email or code"},
	service.ErrInvalidResetCode:     {http.StatusBadRequest, "Invalid or expired reset code"},
	service.ErrInvalidChain:         {http.StatusBadRequest, "Invalid chain"},
	service.ErrInvalidWaypoint:      {http.StatusBadRequest, "Invalid waypoint"},
	service.ErrInvalidScope:         {http.StatusBadRequest, "Invalid scope. Use: global, btc, eth, sol"},
	service.ErrInvalidCoin:          {http.StatusBadRequest, "Invalid coin. Use: btc, eth, sol"},
	service.ErrInvalidPeriod:        {http.StatusBadRequest, "Invalid period. Use: 1h, 6h, 24h, 7d, 30d, 1y or days=1..365"},
	service.ErrMarketUnavailable:    {http.StatusServiceUnavailable, "API is temporarily down. Try again later."},
}

// writeServiceError отвечает статусом по известной ошибке сервиса, иначе 500 с текстом fallback
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error, fallback string) {
	for target, apiErr := range serviceErrors {
		if errors.Is(err, target) {
			logger.Info("request rejected", sl.Err(err), slog.Int("status", apiErr.status))
			response.Error(w, logger, apiErr.status, apiErr.msg)
			return
		}
	}
	logger.Error("request failed", sl.Err(err))
	response.Error(w, logger, http.StatusInternalServerError, fallback)
}

// decodeAndValidate читает JSON тело и проверяет теги validate.
// messages сопоставляет "Поле.тег" с текстом ответа, def используется для остальных нарушений.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any, messages map[string]string, def string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Info("invalid request: decoding error", sl.Err(err))
		response.Error(w, logger, http.StatusBadRequest, msgInvalidRequest)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		logger.Info("invalid request: validation error", sl.Err(err))
		response.Error(w, logger, http.StatusBadRequest, validationMessage(err, messages, def))
		return false
	}
	return true
}

func validationMessage(err error, messages map[string]string, def string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return def
	}
	// первая сработавшая проверка определяет текст
	for _, fe := range verrs {
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return msg
		}
	}
	return def
}

// requireUser достаёт userID, который положил JWT middleware
func requireUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	userID, ok := jwtmiddleware.FromContext(r.Context())
	if !ok {
		logger.Error("userID not found in context")
		response.Error(w, logger, http.StatusUnauthorized, msgNotAuthenticated)
		return 0, false
	}
	return userID, true
}
