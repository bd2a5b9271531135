// Package huggingface はHugging Face Inference APIを使用した画像分類クライアントを提供します。
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"plant_backend/internal/feature/diagnosis/domain"
	"plant_backend/internal/feature/diagnosis/domain/entity"
	"plant_backend/internal/feature/diagnosis/usecase"
	"plant_backend/internal/shared/ratelimiter"
)

// maxErrorBody はログとdetailsに含めるエラー本文の上限です。
const maxErrorBody = 4 << 10

// Classifier は画像バイト列をそのままPOSTし、ラベルとスコアの一覧を受け取ります。
type Classifier struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// ClassifierがClassifierインターフェースを実装していることをコンパイル時に検証します。
var _ usecase.Classifier = (*Classifier)(nil)

// NewClassifier はClassifierを生成します。limiterはnilでも構いません。
func NewClassifier(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Classifier {
	return &Classifier{cfg: cfg, client: client, limiter: limiter}
}

// Classify は推論APIを呼び出します。
// 2xx以外の応答、または {"error": ...} 形式の応答は本文をdetailsに持つ
// domain.KindInference のエラーになります。
func (c *Classifier) Classify(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	if img.ContentType != "" {
		req.Header.Set("Content-Type", img.ContentType)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read inference response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text := truncate(body)
		slog.Error("Hugging Face API error", "status", res.StatusCode, "body", text)
		return nil, domain.NewInferenceError(text, fmt.Errorf("inference http %d", res.StatusCode))
	}

	return decodePredictions(body)
}

// decodePredictions は応答本文を推論結果に変換します。
// 配列以外の形（エラーオブジェクトや入れ子配列）はここで判別します。
func decodePredictions(body []byte) ([]entity.Prediction, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var apiErr struct {
			Error any `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &apiErr); err == nil && apiErr.Error != nil {
			text := truncate(trimmed)
			slog.Error("Hugging Face API returned error payload", "body", text)
			return nil, domain.NewInferenceError(text, nil)
		}
		return nil, domain.NewError(domain.KindMalformedResponse, domain.MessageInvalidPredictions, nil)
	}

	var preds []entity.Prediction
	if err := json.Unmarshal(trimmed, &preds); err != nil {
		// 一部のモデルは [[{label, score}, ...]] を返す
		var nested [][]entity.Prediction
		if err2 := json.Unmarshal(trimmed, &nested); err2 != nil || len(nested) == 0 {
			return nil, domain.NewError(domain.KindMalformedResponse, domain.MessageInvalidPredictions, err)
		}
		preds = nested[0]
	}
	return preds, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody])
	}
	return string(b)
}
