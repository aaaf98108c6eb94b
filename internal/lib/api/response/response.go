package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linemk/cryptship/internal/lib/logger/sl"
)

// ErrorResponse тело ответа при ошибке
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON пишет v со статусом status
func JSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", sl.Err(err))
	}
}

func Error(w http.ResponseWriter, log *slog.Logger, status int, msg string) {
	JSON(w, log, status, ErrorResponse{Error: msg})
}
