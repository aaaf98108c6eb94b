package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/linemk/cryptship/internal/domain/models"
	security "github.com/linemk/cryptship/internal/jwt-new"
	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"github.com/linemk/cryptship/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost стоимость хэширования паролей
const BcryptCost = 10

type AuthService struct {
	log       *slog.Logger
	userRepo  storage.UserStorage
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:       log,
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type AuthServiceInterface interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
	SetReminder(ctx context.Context, userID int64, optIn bool) error
}

// NormalizeEmail приводит email к виду, в котором он хранится
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создаёт аккаунт и сразу выдаёт токен сессии
func (a *AuthService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "service.AuthService.Register"
	email = NormalizeEmail(email)
	logger := a.log.With(slog.String("op", op), slog.String("email", email))

	if len(password) < MinPasswordLen {
		return nil, "", ErrPasswordTooShort
	}

	// Хеширование пароля с помощью bcrypt (автоматически добавляет соль)
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		logger.Error("failed to hash password", sl.Err(err))
		return nil, "", fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := a.userRepo.CreateUser(ctx, &models.User{Email: email, PassHash: passHash})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			logger.Info("email already registered")
			return nil, "", ErrEmailTaken
		}
		logger.Error("failed to create user", sl.Err(err))
		return nil, "", fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	token, err := security.NewToken(user, a.jwtSecret, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", sl.Err(err))
		return nil, "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user registered", slog.Int64("userID", user.ID))
	return user, token, nil
}

// Login проверяет пароль. Неизвестный email и неверный пароль неразличимы для клиента.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "service.AuthService.Login"
	email = NormalizeEmail(email)
	logger := a.log.With(slog.String("op", op), slog.String("email", email))
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Info("user not found")
			return nil, "", ErrInvalidCredentials
		}
		logger.Error("failed to get user", sl.Err(err))
		return nil, "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, "", ErrInvalidCredentials
	}

	if err := a.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// вход не ломаем из-за отметки времени
		logger.Warn("failed to update last login", sl.Err(err))
	}

	token, err := security.NewToken(user, a.jwtSecret, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", sl.Err(err))
		return nil, "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return user, token, nil
}

// Me возвращает пользователя по id из токена и отмечает визит
func (a *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	const op = "service.AuthService.Me"
	logger := a.log.With(slog.String("op", op), slog.Int64("userID", userID))

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Info("token refers to missing user")
			return nil, ErrUnauthorized
		}
		logger.Error("failed to get user", sl.Err(err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := a.userRepo.UpdateLastVisit(ctx, userID); err != nil {
		logger.Warn("failed to update last visit", sl.Err(err))
	} else {
		user.LastVisit = time.Now()
	}
	return user, nil
}

func (a *AuthService) SetReminder(ctx context.Context, userID int64, optIn bool) error {
	const op = "service.AuthService.SetReminder"

	if err := a.userRepo.UpdateReminderOptIn(ctx, userID, optIn); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrUnauthorized
		}
		a.log.Error("failed to update reminder opt-in", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
