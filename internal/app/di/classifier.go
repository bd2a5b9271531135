// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"plant_backend/internal/feature/diagnosis/adapters/huggingface"
	"plant_backend/internal/feature/diagnosis/adapters/vision"
	"plant_backend/internal/feature/diagnosis/usecase"
	"plant_backend/internal/platform/cache"
	"plant_backend/internal/platform/config"
	infrahttp "plant_backend/internal/platform/http"
	"plant_backend/internal/shared/ratelimiter"
)

// predictionNamespace is the Redis key prefix for cached predictions.
const predictionNamespace = "predictions"

// NewClassifier creates the classifier selected by cfg.InferenceProvider and
// wraps it with the Redis cache. A nil rdb disables caching.
// The returned close func releases provider resources and is never nil.
func NewClassifier(ctx context.Context, cfg *config.Config, rdb *redis.Client) (usecase.Classifier, func() error, error) {
	var (
		inner   usecase.Classifier
		closeFn = func() error { return nil }
	)

	switch cfg.InferenceProvider {
	case "vision":
		v, err := vision.NewVisionClassifier(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("create vision classifier: %w", err)
		}
		inner, closeFn = v, v.Close
	case "huggingface", "":
		inner = huggingface.NewClassifier(
			huggingface.Config{APIURL: cfg.HuggingFaceAPIURL, APIKey: cfg.HuggingFaceAPIKey},
			infrahttp.NewHTTPClient(cfg.HTTPTimeout),
			ratelimiter.NewRateLimiter(cfg.InferenceRateLimit, time.Minute),
		)
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownInferenceProvider, cfg.InferenceProvider)
	}

	return cache.NewCachingClassifier(rdb, cfg.CacheTTL, inner, predictionNamespace), closeFn, nil
}
