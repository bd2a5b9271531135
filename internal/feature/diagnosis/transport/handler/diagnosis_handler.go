// Package handler はdiagnosisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"plant_backend/internal/api"
	"plant_backend/internal/feature/diagnosis/domain"
	"plant_backend/internal/feature/diagnosis/domain/entity"
)

// AnalyzeUsecase は診断のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalyzeUsecase interface {
	Analyze(ctx context.Context, imageURL string) (*entity.AnalysisResult, error)
	Conditions() []entity.Condition
}

// DiagnosisHandler は診断と病名一覧のHTTPリクエストを処理します。
type DiagnosisHandler struct {
	uc AnalyzeUsecase
}

// NewDiagnosisHandler はDiagnosisHandlerの新しいインスタンスを生成します。
func NewDiagnosisHandler(uc AnalyzeUsecase) *DiagnosisHandler {
	return &DiagnosisHandler{uc: uc}
}

// Analyze はアップロード済み画像のURLを受け取り、診断結果を返します。
//
// エンドポイント: POST /api/analyze
// Content-Type: application/json
// ボディ: {"imageUrl": "<url>"}
func (h *DiagnosisHandler) Analyze(c *gin.Context) {
	var req api.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("analyze request binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: domain.MessageImageURLRequired})
		return
	}

	result, err := h.uc.Analyze(c.Request.Context(), req.ImageURL)
	if err != nil {
		de := domain.AsError(err)
		status := statusFor(de.Kind)
		if status >= http.StatusInternalServerError {
			slog.Error("analysis failed", "kind", de.Kind, "error", err, "image_url", req.ImageURL)
		} else {
			slog.Warn("analysis rejected", "kind", de.Kind, "error", err)
		}
		c.JSON(status, errorResponse(de))
		return
	}

	c.JSON(http.StatusOK, api.AnalyzeResponse{
		Name:  result.Name,
		Care:  result.Care,
		Score: result.Score,
	})
}

// Conditions は既知のラベルと病名情報の一覧を返します。
//
// エンドポイント: GET /api/conditions
func (h *DiagnosisHandler) Conditions(c *gin.Context) {
	conds := h.uc.Conditions()
	out := make([]api.ConditionResponse, 0, len(conds))
	for _, cd := range conds {
		out = append(out, api.ConditionResponse{
			Label: cd.Label,
			Name:  cd.Info.Name,
			Care:  cd.Info.Care,
		})
	}
	c.JSON(http.StatusOK, out)
}

func statusFor(kind domain.Kind) int {
	if kind == domain.KindInvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// errorResponse は推論エラーのみdetailsを含めます。
func errorResponse(de *domain.Error) api.ErrorResponse {
	resp := api.ErrorResponse{Error: de.Message}
	if de.Kind == domain.KindInference {
		resp.Details = de.Details
	}
	return resp
}
