package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/cryptship/internal/lib/api/response"
	"github.com/linemk/cryptship/internal/service"
)

// ProgressRequest отметка вэйпоинта
type ProgressRequest struct {
	Chain     string `json:"chain" validate:"required"`
	Waypoint  int    `json:"waypoint" validate:"required"`
	Completed bool   `json:"completed"`
}

// SuccessResponse ответ изменяющих прогресс запросов
type SuccessResponse struct {
	Success bool `json:"success"`
}

// GetProgressHandler обрабатывает GET /api/progress.
// Тело: {"sol":{"1":true},"eth":{},"btc":{}}
func GetProgressHandler(log *slog.Logger, progressService service.ProgressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProgressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := requireUser(w, r, logger)
		if !ok {
			return
		}

		view, err := progressService.GetProgress(r.Context(), userID)
		if err != nil {
			writeServiceError(w, logger, err, msgInternal)
			return
		}

		response.JSON(w, logger, http.StatusOK, view.Chains)
	}
}

// NextWaypointsHandler обрабатывает GET /api/progress/next.
// Тело: {"sol":2,"eth":1,"btc":1}, 0 если цепочка пройдена
func NextWaypointsHandler(log *slog.Logger, progressService service.ProgressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.NextWaypointsHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := requireUser(w, r, logger)
		if !ok {
			return
		}

		view, err := progressService.GetProgress(r.Context(), userID)
		if err != nil {
			writeServiceError(w, logger, err, msgInternal)
			return
		}

		response.JSON(w, logger, http.StatusOK, view.Next)
	}
}

// SetProgressHandler обрабатывает POST /api/progress
func SetProgressHandler(log *slog.Logger, progressService service.ProgressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SetProgressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := requireUser(w, r, logger)
		if !ok {
			return
		}

		var req ProgressRequest
		if !decodeAndValidate(w, r, logger, &req, nil, "Chain and waypoint required") {
			return
		}

		if err := progressService.SetProgress(r.Context(), userID, req.Chain, req.Waypoint, req.Completed); err != nil {
			writeServiceError(w, logger, err, msgInternal)
			return
		}

		response.JSON(w, logger, http.StatusOK, SuccessResponse{Success: true})
	}
}

// ResetProgressHandler обрабатывает DELETE /api/progress/{chain}
func ResetProgressHandler(log *slog.Logger, progressService service.ProgressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ResetProgressHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := requireUser(w, r, logger)
		if !ok {
			return
		}

		chain := chi.URLParam(r, "chain")
		if err := progressService.ResetChain(r.Context(), userID, chain); err != nil {
			writeServiceError(w, logger, err, msgInternal)
			return
		}

		response.JSON(w, logger, http.StatusOK, SuccessResponse{Success: true})
	}
}
