package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/linemk/cryptship/internal/domain/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// код нарушения уникальности в postgres
const uniqueViolation = "23505"

type UserStorage interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	UpdateLastVisit(ctx context.Context, id int64) error
	UpdateReminderOptIn(ctx context.Context, id int64, optIn bool) error
	UpdatePasswordTx(ctx context.Context, tx *sql.Tx, id int64, passHash []byte) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

const userColumns = "id, email, password_hash, created_at, last_login, last_visit, reminder_opt_in"

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PassHash, &user.CreatedAt, &user.LastLogin, &user.LastVisit, &user.ReminderOptIn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row)
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

// CreateUser вставляет пользователя; повтор email превращается в ErrUserExists
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at, last_login, last_visit",
		user.Email, user.PassHash,
	).Scan(&user.ID, &user.CreatedAt, &user.LastLogin, &user.LastVisit)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	return r.exec(ctx, "UPDATE users SET last_login = NOW() WHERE id = $1", id)
}

func (r *userRepository) UpdateLastVisit(ctx context.Context, id int64) error {
	return r.exec(ctx, "UPDATE users SET last_visit = NOW() WHERE id = $1", id)
}

func (r *userRepository) UpdateReminderOptIn(ctx context.Context, id int64, optIn bool) error {
	return r.exec(ctx, "UPDATE users SET reminder_opt_in = $1 WHERE id = $2", optIn, id)
}

// UpdatePasswordTx меняет хэш пароля внутри транзакции сброса
func (r *userRepository) UpdatePasswordTx(ctx context.Context, tx *sql.Tx, id int64, passHash []byte) error {
	res, err := tx.ExecContext(ctx, "UPDATE users SET password_hash = $1 WHERE id = $2", passHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *userRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
