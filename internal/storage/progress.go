package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/cryptship/internal/domain/models"
)

// ProgressStorage хранит отметки прохождения вэйпоинтов
type ProgressStorage interface {
	GetProgress(ctx context.Context, userID int64) ([]*models.ProgressEntry, error)
	// UpsertProgress идемпотентно записывает (user, chain, waypoint) -> completed
	UpsertProgress(ctx context.Context, entry *models.ProgressEntry) error
	DeleteChainProgress(ctx context.Context, userID int64, chain string) (int64, error)
}

type progressRepository struct {
	db *sql.DB
}

func NewProgressRepository(db *sql.DB) ProgressStorage {
	return &progressRepository{db: db}
}

func (r *progressRepository) GetProgress(ctx context.Context, userID int64) ([]*models.ProgressEntry, error) {
	query := `
		SELECT user_id, chain, waypoint, completed, updated_at
		FROM progress
		WHERE user_id = $1
		ORDER BY chain, waypoint`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ProgressEntry
	for rows.Next() {
		e := &models.ProgressEntry{}
		if err := rows.Scan(&e.UserID, &e.Chain, &e.Waypoint, &e.Completed, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *progressRepository) UpsertProgress(ctx context.Context, entry *models.ProgressEntry) error {
	query := `
		INSERT INTO progress (user_id, chain, waypoint, completed, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, chain, waypoint)
		DO UPDATE SET completed = EXCLUDED.completed, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, entry.UserID, entry.Chain, entry.Waypoint, entry.Completed); err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

// DeleteChainProgress сбрасывает путь по цепочке, возвращает число удалённых строк
func (r *progressRepository) DeleteChainProgress(ctx context.Context, userID int64, chain string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM progress WHERE user_id = $1 AND chain = $2", userID, chain)
	if err != nil {
		return 0, fmt.Errorf("failed to delete progress: %w", err)
	}
	return res.RowsAffected()
}
