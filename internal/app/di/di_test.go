package di_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plant_backend/internal/app/di"
	"plant_backend/internal/platform/cache"
	"plant_backend/internal/platform/config"
)

func TestNewBlobStore(t *testing.T) {
	tests := []struct {
		name      string
		driver    string
		expectErr error
	}{
		{name: "success: local driver", driver: "local"},
		{name: "error: unknown driver", driver: "ftp", expectErr: config.ErrUnknownStorageDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.StorageDriver = tt.driver
			cfg.LocalStorageDir = filepath.Join(t.TempDir(), "blobs")

			store, dir, err := di.NewBlobStore(context.Background(), cfg)
			if tt.expectErr != nil {
				assert.True(t, errors.Is(err, tt.expectErr))
				assert.Nil(t, store)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, store)
			assert.Equal(t, cfg.LocalStorageDir, dir)
			assert.DirExists(t, dir)
		})
	}
}

func TestNewClassifier(t *testing.T) {
	t.Run("success: huggingface wrapped in cache", func(t *testing.T) {
		cfg := config.New()
		cfg.InferenceRateLimit = 30

		c, closeFn, err := di.NewClassifier(context.Background(), cfg, nil)
		require.NoError(t, err)
		require.NotNil(t, closeFn)
		assert.IsType(t, &cache.CachingClassifier{}, c)
		assert.NoError(t, closeFn())
	})

	t.Run("error: unknown provider", func(t *testing.T) {
		cfg := config.New()
		cfg.InferenceProvider = "local-model"

		_, _, err := di.NewClassifier(context.Background(), cfg, nil)
		assert.True(t, errors.Is(err, config.ErrUnknownInferenceProvider))
	})
}

func TestNewHistoryRepository(t *testing.T) {
	t.Run("disabled without driver", func(t *testing.T) {
		repo, gdb, err := di.NewHistoryRepository(config.New())
		require.NoError(t, err)
		assert.Nil(t, repo)
		assert.Nil(t, gdb)
	})

	t.Run("success: sqlite", func(t *testing.T) {
		cfg := config.New()
		cfg.DBDriver = "sqlite"
		cfg.DBDSN = filepath.Join(t.TempDir(), "history.db")

		repo, gdb, err := di.NewHistoryRepository(cfg)
		require.NoError(t, err)
		require.NotNil(t, repo)
		require.NotNil(t, gdb)
		assert.True(t, gdb.Migrator().HasTable("diagnoses"))

		sqlDB, err := gdb.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
	})
}

func TestNewCareAdvisor_Disabled(t *testing.T) {
	a, err := di.NewCareAdvisor(context.Background(), config.New())
	require.NoError(t, err)
	assert.Nil(t, a)
}
