package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/cryptship/internal/lib/api/response"
	"github.com/linemk/cryptship/internal/service"
)

type RequestResetRequest struct {
	Email string `json:"email" validate:"required"`
}

// RequestResetResponse; DevCode заполняется только вне prod
type RequestResetResponse struct {
	Message string `json:"message"`
	DevCode string `json:"devCode,omitempty"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

var resetPasswordMessages = map[string]string{
	"Code.len":        "Invalid or expired reset code",
	"Code.numeric":    "Invalid or expired reset code",
	"NewPassword.min": "Password must be at least 6 characters",
}

// RequestResetHandler обрабатывает POST /api/auth/request-reset.
// Ответ одинаков для известного и неизвестного email.
func RequestResetHandler(log *slog.Logger, resetService service.ResetServiceInterface, exposeCode bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RequestResetHandler"
		logger := log.With(slog.String("op", op))

		var req RequestResetRequest
		if !decodeAndValidate(w, r, logger, &req, nil, "Email is required") {
			return
		}

		code, err := resetService.RequestReset(r.Context(), req.Email)
		if err != nil {
			writeServiceError(w, logger, err, "Failed to process reset request")
			return
		}

		resp := RequestResetResponse{Message: service.ResetRequestMessage}
		if exposeCode {
			resp.DevCode = code
		}
		response.JSON(w, logger, http.StatusOK, resp)
	}
}

// ResetPasswordHandler обрабатывает POST /api/auth/reset-password
func ResetPasswordHandler(log *slog.Logger, resetService service.ResetServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ResetPasswordHandler"
		logger := log.With(slog.String("op", op))

		var req ResetPasswordRequest
		if !decodeAndValidate(w, r, logger, &req, resetPasswordMessages, "Email, code, and new password are required") {
			return
		}

		if err := resetService.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
			writeServiceError(w, logger, err, "Failed to reset password")
			return
		}

		response.JSON(w, logger, http.StatusOK, MessageResponse{Message: "Password updated successfully"})
	}
}
