package di

import (
	"context"
	"fmt"

	"plant_backend/internal/feature/upload/adapters/local"
	"plant_backend/internal/feature/upload/adapters/s3"
	"plant_backend/internal/feature/upload/usecase"
	"plant_backend/internal/platform/config"
)

// NewBlobStore creates the blob store selected by cfg.StorageDriver.
// For the local driver it also returns the directory the router must serve;
// for s3 the directory is empty and the bucket is created if missing.
func NewBlobStore(ctx context.Context, cfg *config.Config) (usecase.BlobStore, string, error) {
	switch cfg.StorageDriver {
	case "s3":
		store, err := s3.NewBlobStore(ctx, s3.Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("create s3 blob store: %w", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, "", fmt.Errorf("ensure bucket %q: %w", cfg.S3Bucket, err)
		}
		return store, "", nil
	case "local", "":
		store, err := local.NewBlobStore(cfg.LocalStorageDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	default:
		return nil, "", fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.StorageDriver)
	}
}
