package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plant_backend/internal/feature/diagnosis/domain/entity"
)

// mockClassifier はテスト用のClassifierモック実装です。
type mockClassifier struct {
	classifyFn func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error)
	calls      int
}

func (m *mockClassifier) Classify(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
	m.calls++
	if m.classifyFn != nil {
		return m.classifyFn(ctx, img)
	}
	return nil, nil
}

var (
	testImage = &entity.Image{Data: []byte("leaf-bytes"), ContentType: "image/jpeg"}
	testPreds = []entity.Prediction{
		{Label: "A tomato leaf with Early Blight", Score: 0.88},
		{Label: "A healthy tomato leaf", Score: 0.12},
	}
)

func keyFor(data []byte) string {
	sum := sha256.Sum256(data)
	return "predictions:" + hex.EncodeToString(sum[:])
}

// TestNewCachingClassifier_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingClassifier_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", DefaultTTL, "predictions"},
		{"negative ttl uses default", -time.Minute, "", DefaultTTL, "predictions"},
		{"custom values preserved", time.Hour, "hf", time.Hour, "hf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCachingClassifier(nil, tt.ttl, &mockClassifier{}, tt.namespace)
			assert.Equal(t, tt.expectedTTL, c.ttl)
			assert.Equal(t, tt.expectedNamespace, c.namespace)
		})
	}
}

// TestCachingClassifier_NilRedis はRedisがnilの場合に内部実装を直接呼び出すことを検証します。
func TestCachingClassifier_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockClassifier{
		classifyFn: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
			return testPreds, nil
		},
	}
	c := NewCachingClassifier(nil, time.Hour, inner, "")

	got, err := c.Classify(context.Background(), testImage)
	require.NoError(t, err)
	assert.Equal(t, testPreds, got)
	assert.Equal(t, 1, inner.calls)
}

// TestCachingClassifier_CacheHit はキャッシュヒット時に内部実装を呼ばないことを検証します。
func TestCachingClassifier_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	cached, err := json.Marshal(testPreds)
	require.NoError(t, err)
	mock.ExpectGet(keyFor(testImage.Data)).SetVal(string(cached))

	inner := &mockClassifier{}
	c := NewCachingClassifier(rdb, time.Hour, inner, "")

	got, err := c.Classify(context.Background(), testImage)
	require.NoError(t, err)
	assert.Equal(t, testPreds, got)
	assert.Equal(t, 0, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingClassifier_CacheMiss はキャッシュミス時に結果を保存することを検証します。
func TestCachingClassifier_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	key := keyFor(testImage.Data)
	expectedJSON, err := json.Marshal(testPreds)
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, expectedJSON, time.Hour).SetVal("OK")

	inner := &mockClassifier{
		classifyFn: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
			return testPreds, nil
		},
	}
	c := NewCachingClassifier(rdb, time.Hour, inner, "")

	got, err := c.Classify(context.Background(), testImage)
	require.NoError(t, err)
	assert.Equal(t, testPreds, got)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingClassifier_EmptyResultNotCached は空の結果を保存しないことを検証します。
func TestCachingClassifier_EmptyResultNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(keyFor(testImage.Data)).RedisNil()

	inner := &mockClassifier{
		classifyFn: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
			return []entity.Prediction{}, nil
		},
	}
	c := NewCachingClassifier(rdb, time.Hour, inner, "")

	got, err := c.Classify(context.Background(), testImage)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingClassifier_InnerError は内部エラーをそのまま返しキャッシュしないことを検証します。
func TestCachingClassifier_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(keyFor(testImage.Data)).RedisNil()

	innerErr := errors.New("inference down")
	inner := &mockClassifier{
		classifyFn: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
			return nil, innerErr
		},
	}
	c := NewCachingClassifier(rdb, time.Hour, inner, "")

	_, err := c.Classify(context.Background(), testImage)
	assert.ErrorIs(t, err, innerErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingClassifier_CorruptedEntry は壊れたエントリを削除して再取得することを検証します。
func TestCachingClassifier_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	key := keyFor(testImage.Data)
	expectedJSON, err := json.Marshal(testPreds)
	require.NoError(t, err)

	mock.ExpectGet(key).SetVal("invalid json")
	mock.ExpectDel(key).SetVal(1)
	mock.ExpectSet(key, expectedJSON, time.Hour).SetVal("OK")

	inner := &mockClassifier{
		classifyFn: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
			return testPreds, nil
		},
	}
	c := NewCachingClassifier(rdb, time.Hour, inner, "")

	got, err := c.Classify(context.Background(), testImage)
	require.NoError(t, err)
	assert.Equal(t, testPreds, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingClassifier_RedisError はRedis障害時も内部実装の結果を返すことを検証します。
func TestCachingClassifier_RedisError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	key := keyFor(testImage.Data)
	expectedJSON, err := json.Marshal(testPreds)
	require.NoError(t, err)

	mock.ExpectGet(key).SetErr(errors.New("connection reset"))
	mock.ExpectSet(key, expectedJSON, time.Hour).SetErr(errors.New("connection reset"))

	inner := &mockClassifier{
		classifyFn: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
			return testPreds, nil
		},
	}
	c := NewCachingClassifier(rdb, time.Hour, inner, "")

	got, err := c.Classify(context.Background(), testImage)
	require.NoError(t, err)
	assert.Equal(t, testPreds, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
