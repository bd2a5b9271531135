package di

import (
	"time"

	"gorm.io/gorm"

	"plant_backend/internal/feature/diagnosis/adapters/history"
	"plant_backend/internal/feature/diagnosis/usecase"
	"plant_backend/internal/platform/config"
	"plant_backend/internal/platform/db"
)

// dbConnectTimeout bounds the startup retry loop.
const dbConnectTimeout = 30 * time.Second

// NewHistoryRepository opens the history database when cfg.DBDriver is set.
// With no driver configured it returns nil values and history stays disabled.
func NewHistoryRepository(cfg *config.Config) (usecase.HistoryRepository, *gorm.DB, error) {
	if cfg.DBDriver == "" {
		return nil, nil, nil
	}
	gdb, err := db.Open(db.Config{
		Driver:   cfg.DBDriver,
		DSN:      cfg.DBDSN,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
	}, dbConnectTimeout, &history.DiagnosisModel{})
	if err != nil {
		return nil, nil, err
	}
	return history.NewDiagnosisRepository(gdb), gdb, nil
}
