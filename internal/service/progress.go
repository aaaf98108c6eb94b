package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/linemk/cryptship/internal/domain/catalog"
	"github.com/linemk/cryptship/internal/domain/models"
	"github.com/linemk/cryptship/internal/lib/logger/sl"
	"github.com/linemk/cryptship/internal/storage"
)

// ChainProgress отметки по вэйпоинтам цепочки, ключ - номер вэйпоинта строкой
type ChainProgress map[string]bool

// ProgressView прогресс пользователя по всем цепочкам; все цепочки присутствуют всегда
type ProgressView struct {
	Chains map[string]ChainProgress
	// Next первый незавершённый вэйпоинт по каждой цепочке, 0 если пройдены все
	Next map[string]int
}

type ProgressService interface {
	GetProgress(ctx context.Context, userID int64) (*ProgressView, error)
	SetProgress(ctx context.Context, userID int64, chain string, waypoint int, completed bool) error
	ResetChain(ctx context.Context, userID int64, chain string) error
}

type progressService struct {
	log          *slog.Logger
	progressRepo storage.ProgressStorage
}

func NewProgressService(log *slog.Logger, progressRepo storage.ProgressStorage) ProgressService {
	return &progressService{
		log:          log,
		progressRepo: progressRepo,
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID int64) (*ProgressView, error) {
	const op = "service.ProgressService.GetProgress"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	entries, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		logger.Error("failed to get progress", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buildProgressView(entries), nil
}

func buildProgressView(entries []*models.ProgressEntry) *ProgressView {
	view := &ProgressView{
		Chains: make(map[string]ChainProgress),
		Next:   make(map[string]int),
	}
	for _, id := range catalog.ChainIDs() {
		view.Chains[id] = ChainProgress{}
	}

	for _, e := range entries {
		// строки с цепочками вне каталога не показываем
		cp, ok := view.Chains[e.Chain]
		if !ok {
			continue
		}
		cp[strconv.Itoa(e.Waypoint)] = e.Completed
	}

	for id, cp := range view.Chains {
		view.Next[id] = 0
		for wp := catalog.FirstWaypoint; wp <= catalog.LastWaypoint; wp++ {
			if !cp[strconv.Itoa(wp)] {
				view.Next[id] = wp
				break
			}
		}
	}
	return view
}

func (s *progressService) SetProgress(ctx context.Context, userID int64, chain string, waypoint int, completed bool) error {
	const op = "service.ProgressService.SetProgress"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.String("chain", chain),
		slog.Int("waypoint", waypoint),
	)

	if !catalog.IsChain(chain) {
		return ErrInvalidChain
	}
	if !catalog.IsWaypoint(waypoint) {
		return ErrInvalidWaypoint
	}

	entry := &models.ProgressEntry{
		UserID:    userID,
		Chain:     chain,
		Waypoint:  waypoint,
		Completed: completed,
	}
	if err := s.progressRepo.UpsertProgress(ctx, entry); err != nil {
		logger.Error("failed to save progress", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Debug("progress saved", slog.Bool("completed", completed))
	return nil
}

// ResetChain начинает путь по цепочке заново
func (s *progressService) ResetChain(ctx context.Context, userID int64, chain string) error {
	const op = "service.ProgressService.ResetChain"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.String("chain", chain))

	if !catalog.IsChain(chain) {
		return ErrInvalidChain
	}

	n, err := s.progressRepo.DeleteChainProgress(ctx, userID, chain)
	if err != nil {
		logger.Error("failed to reset chain progress", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("chain progress reset", slog.Int64("removed", n))
	return nil
}
