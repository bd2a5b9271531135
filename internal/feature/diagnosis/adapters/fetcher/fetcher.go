// Package fetcher はアップロード済み画像をURLから再取得するImageFetcher実装を提供します。
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/gabriel-vasile/mimetype"

	"plant_backend/internal/feature/diagnosis/domain"
	"plant_backend/internal/feature/diagnosis/domain/entity"
	"plant_backend/internal/feature/diagnosis/usecase"
)

// DefaultMaxBytes は再取得する画像の最大サイズです。
const DefaultMaxBytes int64 = 20 << 20

// HTTPFetcher はHTTP GETで画像を取得します。
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// HTTPFetcherがImageFetcherを実装していることをコンパイル時に検証します。
var _ usecase.ImageFetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher はHTTPFetcherを生成します。maxBytesが0以下ならDefaultMaxBytesを使います。
func NewHTTPFetcher(client *http.Client, maxBytes int64) *HTTPFetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{client: client, maxBytes: maxBytes}
}

// Fetch は画像を取得します。http/https以外のURL、通信エラー、2xx以外の応答は
// domain.KindFetch のエラーになります。
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*entity.Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, domain.NewFetchError(rawURL, fmt.Errorf("unsupported url"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.NewFetchError(rawURL, err)
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(rawURL, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, domain.NewFetchError(rawURL, fmt.Errorf("http %d", res.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, f.maxBytes+1))
	if err != nil {
		return nil, domain.NewFetchError(rawURL, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, domain.NewFetchError(rawURL, fmt.Errorf("image exceeds %d bytes", f.maxBytes))
	}

	return &entity.Image{Data: data, ContentType: contentType(res.Header.Get("Content-Type"), data)}, nil
}

// contentType はヘッダーの値を優先し、空またはoctet-streamなら中身から判定します。
func contentType(header string, data []byte) string {
	if header != "" {
		if mt, _, err := mime.ParseMediaType(header); err == nil && mt != "application/octet-stream" {
			return header
		}
	}
	return mimetype.Detect(data).String()
}
