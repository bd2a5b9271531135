// Package history は診断履歴のGORMリポジトリ実装を提供します。
package history

import (
	"time"

	"plant_backend/internal/feature/diagnosis/domain/entity"
)

// DiagnosisModel はdiagnosesテーブルの行です。
type DiagnosisModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	ImageURL  string    `gorm:"size:2048;not null"`
	Label     string    `gorm:"size:255;not null"`
	Name      string    `gorm:"size:255;not null"`
	Score     float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}

// TableName はテーブル名を返します。
func (DiagnosisModel) TableName() string { return "diagnoses" }

func toModel(d *entity.Diagnosis) *DiagnosisModel {
	return &DiagnosisModel{
		ID:        d.ID,
		ImageURL:  d.ImageURL,
		Label:     d.Label,
		Name:      d.Name,
		Score:     d.Score,
		CreatedAt: d.CreatedAt,
	}
}

func (m *DiagnosisModel) toEntity() entity.Diagnosis {
	return entity.Diagnosis{
		ID:        m.ID,
		ImageURL:  m.ImageURL,
		Label:     m.Label,
		Name:      m.Name,
		Score:     m.Score,
		CreatedAt: m.CreatedAt,
	}
}
