package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"plant_backend/internal/api"
	"plant_backend/internal/feature/diagnosis/domain/entity"
	"plant_backend/internal/feature/diagnosis/usecase"
)

// ConsultUsecase は追加ケアアドバイスのユースケースインターフェースです。
type ConsultUsecase interface {
	Consult(ctx context.Context, name string) (*entity.CareAdvice, error)
}

// ConsultHandler はケアアドバイス生成のHTTPリクエストを処理します。
type ConsultHandler struct {
	uc ConsultUsecase
}

// NewConsultHandler はConsultHandlerの新しいインスタンスを生成します。
func NewConsultHandler(uc ConsultUsecase) *ConsultHandler {
	return &ConsultHandler{uc: uc}
}

// Consult は病名に対する追加アドバイスを生成します。
//
// エンドポイント: POST /api/consult
// Content-Type: application/json
func (h *ConsultHandler) Consult(c *gin.Context) {
	var req api.ConsultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("consult request binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Condition name is required."})
		return
	}

	advice, err := h.uc.Consult(c.Request.Context(), req.Name)
	if err != nil {
		if usecase.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("consult failed", "error", err, "name", req.Name)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "Failed to generate care advice."})
		return
	}

	c.JSON(http.StatusOK, api.ConsultResponse{Name: advice.Name, Advice: advice.Advice})
}
