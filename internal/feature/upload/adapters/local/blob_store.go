// Package local はローカルディレクトリに保存するBlobStore実装を提供します。
// 保存したファイルはルーターが /blobs 配下で配信します。
package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plant_backend/internal/feature/upload/domain/entity"
	"plant_backend/internal/feature/upload/usecase"
)

// RoutePrefix は保存したファイルを配信するパスです。
const RoutePrefix = "/blobs"

// ErrInvalidName は区切り文字を含む名前で保存しようとした場合に返されます。
var ErrInvalidName = errors.New("invalid object name")

// BlobStore はファイルシステムに保存します。
type BlobStore struct {
	dir     string
	baseURL string
}

var _ usecase.BlobStore = (*BlobStore)(nil)

// NewBlobStore はdirを作成してBlobStoreを返します。
// baseURLはこのサービスの公開URL（例: http://localhost:8080）です。
func NewBlobStore(dir, baseURL string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %q: %w", dir, err)
	}
	return &BlobStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir は保存先ディレクトリを返します。
func (s *BlobStore) Dir() string { return s.dir }

// Put はnameでファイルを作成します。既存のファイルは上書きしません。
func (s *BlobStore) Put(ctx context.Context, name string, data []byte, contentType string) (*entity.StoredObject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", name, err)
	}

	url := s.baseURL + RoutePrefix + "/" + name
	return &entity.StoredObject{
		URL:                url,
		DownloadURL:        url + "?download=1",
		Pathname:           name,
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf(`inline; filename="%s"`, name),
		Size:               int64(len(data)),
	}, nil
}
