// Package handler はuploadフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"plant_backend/internal/api"
	"plant_backend/internal/feature/upload/domain/entity"
	"plant_backend/internal/feature/upload/usecase"
)

// レスポンスのエラーメッセージ。
const (
	MessageMissingInput = "No filename or file body provided."
	MessageUploadFailed = "Failed to upload file."
	MessageFileTooLarge = "File too large."
	MessageReadFailed   = "Failed to read request body."
	octetStream         = "application/octet-stream"
)

// UploadUsecase はアップロードのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type UploadUsecase interface {
	Upload(ctx context.Context, originalFilename string, data []byte, contentType string) (*entity.StoredObject, error)
}

// UploadHandler はファイルアップロードのHTTPリクエストを処理します。
type UploadHandler struct {
	uc       UploadUsecase
	maxBytes int64
}

// NewUploadHandler はUploadHandlerの新しいインスタンスを生成します。
func NewUploadHandler(uc UploadUsecase, maxBytes int64) *UploadHandler {
	return &UploadHandler{uc: uc, maxBytes: maxBytes}
}

// Upload はリクエストボディをそのまま保存し、保存先の記述子を返します。
//
// エンドポイント: POST /api/upload?filename=<元のファイル名>
// ボディ: ファイルの生データ
func (h *UploadHandler) Upload(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" || c.Request.Body == nil || c.Request.Body == http.NoBody {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: MessageMissingInput})
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			slog.Warn("upload exceeds size limit", "limit", tooLarge.Limit, "filename", filename)
			c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: MessageFileTooLarge})
			return
		}
		slog.Error("failed to read upload body", "error", err)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: MessageReadFailed})
		return
	}

	obj, err := h.uc.Upload(c.Request.Context(), filename, data, detectContentType(c.GetHeader("Content-Type"), data))
	if err != nil {
		if errors.Is(err, usecase.ErrFilenameRequired) || errors.Is(err, usecase.ErrBodyRequired) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: MessageMissingInput})
			return
		}
		slog.Error("error during blob upload", "error", err, "filename", filename)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: MessageUploadFailed, Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.StoredObjectResponse{
		URL:                obj.URL,
		DownloadURL:        obj.DownloadURL,
		Pathname:           obj.Pathname,
		ContentType:        obj.ContentType,
		ContentDisposition: obj.ContentDisposition,
		Size:               obj.Size,
		Width:              obj.Width,
		Height:             obj.Height,
	})
}

// detectContentType はヘッダーの値を優先し、空またはoctet-streamなら中身から判定します。
func detectContentType(header string, data []byte) string {
	if header != "" {
		if mt, _, err := mime.ParseMediaType(header); err == nil && mt != octetStream {
			return header
		}
	}
	return mimetype.Detect(data).String()
}
