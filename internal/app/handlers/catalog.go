package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/cryptship/internal/domain/catalog"
	"github.com/linemk/cryptship/internal/lib/api/response"
)

type ChainsResponse struct {
	Chains []catalog.Chain `json:"chains"`
}

type WaypointsResponse struct {
	Chain     string             `json:"chain"`
	Waypoints []catalog.Waypoint `json:"waypoints"`
}

// ChainsHandler обрабатывает GET /api/chains
func ChainsHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ChainsHandler"))
		response.JSON(w, logger, http.StatusOK, ChainsResponse{Chains: catalog.Chains()})
	}
}

// WaypointsHandler обрабатывает GET /api/chains/{chain}/waypoints
func WaypointsHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.WaypointsHandler"
		logger := log.With(slog.String("op", op))

		chain := chi.URLParam(r, "chain")
		waypoints, ok := catalog.Waypoints(chain)
		if !ok {
			logger.Info("unknown chain requested", slog.String("chain", chain))
			response.Error(w, logger, http.StatusNotFound, "Unknown chain")
			return
		}

		response.JSON(w, logger, http.StatusOK, WaypointsResponse{Chain: chain, Waypoints: waypoints})
	}
}
