package usecase

import (
	"context"
	"fmt"

	"plant_backend/internal/feature/diagnosis/domain/entity"
)

const (
	// DefaultHistoryLimit はlimit未指定時の件数です。
	DefaultHistoryLimit = 20
	// MaxHistoryLimit はlimitの上限です。
	MaxHistoryLimit = 100
)

type historyUsecase struct {
	repo HistoryRepository
}

// NewHistoryUsecase はhistoryUsecaseの新しいインスタンスを生成します。
func NewHistoryUsecase(repo HistoryRepository) *historyUsecase {
	return &historyUsecase{repo: repo}
}

// Recent は新しい順に診断履歴を返します。
// limitが0以下ならDefaultHistoryLimit、上限を超える場合はMaxHistoryLimitに丸めます。
func (u *historyUsecase) Recent(ctx context.Context, limit int) ([]entity.Diagnosis, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	out, err := u.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent diagnoses (limit=%d): %w", limit, err)
	}
	return out, nil
}
