// Package usecase はuploadフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // image.DecodeConfig 用
	_ "image/jpeg" // image.DecodeConfig 用
	_ "image/png"  // image.DecodeConfig 用
	"log/slog"
	"path"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "golang.org/x/image/webp" // image.DecodeConfig 用

	"plant_backend/internal/feature/upload/domain/entity"
)

const (
	// IDAlphabet は保存名の接頭辞に使う文字集合です。
	IDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	// IDLength は保存名の接頭辞の長さです。
	IDLength = 7
	// DefaultExtension は元のファイル名から拡張子が得られない場合に使います。
	DefaultExtension = "tmp"
	// MaxExtensionLength は拡張子の最大文字数です。
	MaxExtensionLength = 16
)

// BlobStore はオブジェクトを公開読み取り可能な状態で保存します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (*entity.StoredObject, error)
}

// Recorder はアップロードのメトリクスを記録します。
type Recorder interface {
	RecordUpload(result string)
}

// IDGenerator は保存名の接頭辞を生成します。
type IDGenerator func() (string, error)

// NanoID はIDAlphabetからIDLength文字のIDを生成します。
func NanoID() (string, error) {
	return gonanoid.Generate(IDAlphabet, IDLength)
}

type uploadUsecase struct {
	store    BlobStore
	newID    IDGenerator
	recorder Recorder
}

// NewUploadUsecase はuploadUsecaseの新しいインスタンスを生成します。
// newIDがnilの場合はNanoIDを使います。recorderはnilでも構いません。
func NewUploadUsecase(store BlobStore, newID IDGenerator, recorder Recorder) *uploadUsecase {
	if newID == nil {
		newID = NanoID
	}
	return &uploadUsecase{store: store, newID: newID, recorder: recorder}
}

// Upload はデータを新しい名前で保存し、ストアが返す記述子を返します。
// ストアの失敗はリトライせずそのまま返します。
func (u *uploadUsecase) Upload(ctx context.Context, originalFilename string, data []byte, contentType string) (*entity.StoredObject, error) {
	if strings.TrimSpace(originalFilename) == "" {
		u.record("invalid")
		return nil, ErrFilenameRequired
	}
	if len(data) == 0 {
		u.record("invalid")
		return nil, ErrBodyRequired
	}

	id, err := u.newID()
	if err != nil {
		u.record("error")
		return nil, fmt.Errorf("generate id: %w", err)
	}
	name := StoredName(id, originalFilename)

	slog.Info("attempting to upload", "original_filename", originalFilename, "pathname", name)

	obj, err := u.store.Put(ctx, name, data, contentType)
	if err != nil {
		u.record("error")
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	if w, h, ok := dimensions(data); ok {
		obj.Width, obj.Height = w, h
	}

	u.record("success")
	slog.Info("upload successful", "pathname", obj.Pathname, "url", obj.URL, "size", obj.Size)
	return obj, nil
}

func (u *uploadUsecase) record(result string) {
	if u.recorder != nil {
		u.recorder.RecordUpload(result)
	}
}

// StoredName は "<id>.<ext>" 形式の保存名を返します。
func StoredName(id, originalFilename string) string {
	return id + "." + Extension(originalFilename)
}

// Extension は元のファイル名の最後のドット以降を英数字のみに絞って返します。
// 拡張子がない、または何も残らない場合はDefaultExtensionです。
func Extension(originalFilename string) string {
	ext := strings.TrimPrefix(path.Ext(originalFilename), ".")
	var b strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == MaxExtensionLength {
			break
		}
	}
	if b.Len() == 0 {
		return DefaultExtension
	}
	return b.String()
}

// dimensions は画像として解釈できれば幅と高さを返します。
func dimensions(data []byte) (int, int, bool) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
