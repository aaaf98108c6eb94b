package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/linemk/cryptship/internal/domain/models"
)

var ErrResetCodeNotFound = errors.New("reset code not found")

type ResetCodeStorage interface {
	CreateResetCode(ctx context.Context, userID int64, code string, expiresAt time.Time) error
	CountRecentResetCodes(ctx context.Context, userID int64, since time.Time) (int, error)
	FindValidResetCode(ctx context.Context, userID int64, code string, now time.Time) (*models.ResetCode, error)
	// MarkResetCodeUsedTx помечает код использованным только если он ещё не был использован
	MarkResetCodeUsedTx(ctx context.Context, tx *sql.Tx, id int64) error
}

type resetCodeRepository struct {
	db *sql.DB
}

func NewResetCodeRepository(db *sql.DB) ResetCodeStorage {
	return &resetCodeRepository{db: db}
}

func (r *resetCodeRepository) CreateResetCode(ctx context.Context, userID int64, code string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO reset_codes (user_id, code, expires_at) VALUES ($1, $2, $3)",
		userID, code, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reset code: %w", err)
	}
	return nil
}

func (r *resetCodeRepository) CountRecentResetCodes(ctx context.Context, userID int64, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reset_codes WHERE user_id = $1 AND created_at > $2",
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindValidResetCode самый свежий неиспользованный и непросроченный код
func (r *resetCodeRepository) FindValidResetCode(ctx context.Context, userID int64, code string, now time.Time) (*models.ResetCode, error) {
	query := `
		SELECT id, user_id, code, created_at, expires_at, used
		FROM reset_codes
		WHERE user_id = $1 AND code = $2 AND used = FALSE AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1`
	rc := &models.ResetCode{}
	err := r.db.QueryRowContext(ctx, query, userID, code, now).
		Scan(&rc.ID, &rc.UserID, &rc.Code, &rc.CreatedAt, &rc.ExpiresAt, &rc.Used)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResetCodeNotFound
		}
		return nil, err
	}
	return rc, nil
}

func (r *resetCodeRepository) MarkResetCodeUsedTx(ctx context.Context, tx *sql.Tx, id int64) error {
	res, err := tx.ExecContext(ctx, "UPDATE reset_codes SET used = TRUE WHERE id = $1 AND used = FALSE", id)
	if err != nil {
		return fmt.Errorf("failed to mark reset code used: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// код уже погашен параллельным запросом
	if affected == 0 {
		return ErrResetCodeNotFound
	}
	return nil
}
