package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"plant_backend/internal/api"
	"plant_backend/internal/feature/diagnosis/domain/entity"
)

// HistoryUsecase は診断履歴のユースケースインターフェースです。
type HistoryUsecase interface {
	Recent(ctx context.Context, limit int) ([]entity.Diagnosis, error)
}

// HistoryHandler は診断履歴のHTTPリクエストを処理します。
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler はHistoryHandlerの新しいインスタンスを生成します。
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List は直近の診断履歴を返します。
//
// エンドポイント: GET /api/diagnoses?limit=N（要Bearer JWT）
func (h *HistoryHandler) List(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "limit must be an integer"})
			return
		}
		limit = n
	}

	items, err := h.uc.Recent(c.Request.Context(), limit)
	if err != nil {
		slog.Error("failed to list diagnoses", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load diagnosis history."})
		return
	}

	out := make([]api.DiagnosisResponse, 0, len(items))
	for _, d := range items {
		out = append(out, api.DiagnosisResponse{
			ID:        d.ID,
			ImageURL:  d.ImageURL,
			Label:     d.Label,
			Name:      d.Name,
			Score:     d.Score,
			CreatedAt: d.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
