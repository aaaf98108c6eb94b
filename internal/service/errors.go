package service

import "errors"

// ошибки бизнес-логики, обработчики сопоставляют их со статусами и текстами ответа
var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email already registered")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrTooManyResetRequests = errors.New("too many reset requests")
	ErrInvalidEmailOrCode   = errors.New("invalid email or code")
	ErrInvalidResetCode     = errors.New("invalid or expired reset code")
	ErrUnauthorized         = errors.New("not authenticated")

	ErrInvalidChain    = errors.New("invalid chain")
	ErrInvalidWaypoint = errors.New("invalid waypoint")

	ErrInvalidScope      = errors.New("invalid news scope")
	ErrInvalidCoin       = errors.New("invalid coin")
	ErrInvalidPeriod     = errors.New("invalid chart period")
	ErrMarketUnavailable = errors.New("market data temporarily unavailable")
)

// MinPasswordLen минимальная длина пароля
const MinPasswordLen = 6
