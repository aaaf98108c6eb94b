package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"github.com/linemk/cryptship/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// ResetRequestMessage одинаковый ответ для известного и неизвестного email
const ResetRequestMessage = "If an account with that email exists, a reset code has been sent."

// ResetNotifier доставляет код пользователю
type ResetNotifier interface {
	SendResetCode(ctx context.Context, email, code string, expiresAt time.Time) error
}

// LogNotifier пишет код в лог вместо отправки письма
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendResetCode(_ context.Context, email, code string, expiresAt time.Time) error {
	n.log.Info("password reset code issued",
		slog.String("email", email),
		slog.String("code", code),
		slog.Time("expires_at", expiresAt),
	)
	return nil
}

type ResetServiceInterface interface {
	// RequestReset возвращает выданный код, либо "" если email неизвестен
	RequestReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type ResetService struct {
	log         *slog.Logger
	db          *sql.DB
	userRepo    storage.UserStorage
	codeRepo    storage.ResetCodeStorage
	notifier    ResetNotifier
	codeTTL     time.Duration
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

func NewResetService(
	log *slog.Logger,
	db *sql.DB,
	userRepo storage.UserStorage,
	codeRepo storage.ResetCodeStorage,
	notifier ResetNotifier,
	codeTTL time.Duration,
	maxRequests int,
	window time.Duration,
) *ResetService {
	return &ResetService{
		log:         log,
		db:          db,
		userRepo:    userRepo,
		codeRepo:    codeRepo,
		notifier:    notifier,
		codeTTL:     codeTTL,
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

func (s *ResetService) RequestReset(ctx context.Context, email string) (string, error) {
	const op = "service.ResetService.RequestReset"
	email = NormalizeEmail(email)
	logger := s.log.With(slog.String("op", op), slog.String("email", email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Info("reset requested for unknown email")
			return "", nil
		}
		logger.Error("failed to get user", sl.Err(err))
		return "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	now := s.now()
	recent, err := s.codeRepo.CountRecentResetCodes(ctx, user.ID, now.Add(-s.window))
	if err != nil {
		logger.Error("failed to count reset codes", sl.Err(err))
		return "", fmt.Errorf("%s: failed to count reset codes: %w", op, err)
	}
	if recent >= s.maxRequests {
		logger.Warn("too many reset requests", slog.Int("recent", recent))
		return "", ErrTooManyResetRequests
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate code: %w", op, err)
	}
	expiresAt := now.Add(s.codeTTL)

	if err := s.codeRepo.CreateResetCode(ctx, user.ID, code, expiresAt); err != nil {
		logger.Error("failed to store reset code", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.notifier.SendResetCode(ctx, email, code, expiresAt); err != nil {
		logger.Error("failed to deliver reset code", sl.Err(err))
		return "", fmt.Errorf("%s: failed to deliver reset code: %w", op, err)
	}
	return code, nil
}

// ResetPassword гасит код и меняет пароль в одной транзакции.
// Код принимается ровно один раз, даже при параллельных запросах.
func (s *ResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	const op = "service.ResetService.ResetPassword"
	email = NormalizeEmail(email)
	logger := s.log.With(slog.String("op", op), slog.String("email", email))

	if len(newPassword) < MinPasswordLen {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrInvalidEmailOrCode
		}
		logger.Error("failed to get user", sl.Err(err))
		return fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	rc, err := s.codeRepo.FindValidResetCode(ctx, user.ID, code, s.now())
	if err != nil {
		if errors.Is(err, storage.ErrResetCodeNotFound) {
			logger.Info("no valid reset code")
			return ErrInvalidResetCode
		}
		logger.Error("failed to find reset code", sl.Err(err))
		return fmt.Errorf("%s: failed to find reset code: %w", op, err)
	}
	if !rc.Valid(s.now()) {
		logger.Info("reset code is used or expired")
		return ErrInvalidResetCode
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), BcryptCost)
	if err != nil {
		return fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", sl.Err(err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	if err := s.codeRepo.MarkResetCodeUsedTx(ctx, tx, rc.ID); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", sl.Err(rbErr))
		}
		if errors.Is(err, storage.ErrResetCodeNotFound) {
			logger.Info("reset code consumed concurrently")
			return ErrInvalidResetCode
		}
		logger.Error("failed to mark code used", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.userRepo.UpdatePasswordTx(ctx, tx, user.ID, passHash); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", sl.Err(rbErr))
		}
		logger.Error("failed to update password", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", sl.Err(err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("password updated", slog.Int64("userID", user.ID))
	return nil
}

// generateCode шестизначный код 100000..999999
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
