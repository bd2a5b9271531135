// Package cache provides Redis-backed decorators for diagnosis collaborators.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"plant_backend/internal/feature/diagnosis/domain/entity"
	"plant_backend/internal/feature/diagnosis/usecase"
)

// DefaultTTL is used when a non-positive TTL is given.
const DefaultTTL = 24 * time.Hour

// CachingClassifier decorates a Classifier with a Redis cache keyed by the
// SHA-256 of the image bytes. The same photo re-uploaded under a new name
// therefore hits the cache.
type CachingClassifier struct {
	inner     usecase.Classifier
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.Classifier = (*CachingClassifier)(nil)

// NewCachingClassifier wraps inner. A nil rdb disables caching.
// If namespace is empty, it uses "predictions".
func NewCachingClassifier(rdb *redis.Client, ttl time.Duration, inner usecase.Classifier, namespace string) *CachingClassifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "predictions"
	}
	return &CachingClassifier{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Classify returns cached predictions when present, otherwise calls the inner
// classifier and stores a non-empty result. Redis failures never fail the call.
func (c *CachingClassifier) Classify(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
	if c.rdb == nil {
		return c.inner.Classify(ctx, img)
	}

	key := c.cacheKey(img.Data)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Prediction
		if err := json.Unmarshal(b, &out); err == nil && len(out) > 0 {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && err != redis.Nil {
		slog.Warn("prediction cache read failed", "key", key, "error", err)
	}

	out, err := c.inner.Classify(ctx, img)
	if err != nil {
		return nil, err
	}

	if len(out) > 0 {
		if b, err := json.Marshal(out); err == nil {
			if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
				slog.Warn("prediction cache write failed", "key", key, "error", err)
			}
		}
	}
	return out, nil
}

func (c *CachingClassifier) cacheKey(data []byte) string {
	sum := sha256.Sum256(data)
	return c.namespace + ":" + hex.EncodeToString(sum[:])
}
