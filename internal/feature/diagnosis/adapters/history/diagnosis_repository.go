package history

import (
	"context"

	"gorm.io/gorm"

	"plant_backend/internal/feature/diagnosis/domain/entity"
	"plant_backend/internal/feature/diagnosis/usecase"
)

// diagnosisRepository はHistoryRepositoryのGORM実装です。
type diagnosisRepository struct {
	db *gorm.DB
}

var _ usecase.HistoryRepository = (*diagnosisRepository)(nil)

// NewDiagnosisRepository は指定されたDB接続でリポジトリを生成します。
func NewDiagnosisRepository(db *gorm.DB) *diagnosisRepository {
	return &diagnosisRepository{db: db}
}

// Save は診断結果を1件保存します。
func (r *diagnosisRepository) Save(ctx context.Context, d *entity.Diagnosis) error {
	return r.db.WithContext(ctx).Create(toModel(d)).Error
}

// ListRecent は作成日時の新しい順にlimit件を返します。
func (r *diagnosisRepository) ListRecent(ctx context.Context, limit int) ([]entity.Diagnosis, error) {
	var rows []DiagnosisModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Diagnosis, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}
