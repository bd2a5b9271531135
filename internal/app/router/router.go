// Package router wires HTTP routes to feature handlers.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	diagnosishandler "plant_backend/internal/feature/diagnosis/transport/handler"
	"plant_backend/internal/feature/upload/adapters/local"
	uploadhandler "plant_backend/internal/feature/upload/transport/handler"
	"plant_backend/internal/platform/http/handler"
	jwtmw "plant_backend/internal/platform/jwt"
	"plant_backend/internal/platform/metrics"
)

// Handlers はルーティング対象のハンドラーです。HistoryとConsultはnilなら登録しません。
type Handlers struct {
	Upload    *uploadhandler.UploadHandler
	Diagnosis *diagnosishandler.DiagnosisHandler
	History   *diagnosishandler.HistoryHandler
	Consult   *diagnosishandler.ConsultHandler
}

// Options はルーター全体の設定です。
type Options struct {
	Metrics            *metrics.Metrics
	HealthChecks       []handler.Check
	CORSAllowedOrigins []string
	JWTSecret          string
	// BlobDir が空でなければ /blobs 配下で配信します（localストレージ用）。
	BlobDir string
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(corsMiddleware(opts.CORSAllowedOrigins))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	// 導通確認用
	health := handler.Health(opts.HealthChecks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// アップロードしたファイルの配信
	if opts.BlobDir != "" {
		r.StaticFS(local.RoutePrefix, gin.Dir(opts.BlobDir, false))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/upload", h.Upload.Upload)
		apiGroup.POST("/analyze", h.Diagnosis.Analyze)
		apiGroup.GET("/conditions", h.Diagnosis.Conditions)
		if h.Consult != nil {
			apiGroup.POST("/consult", h.Consult.Consult)
		}
	}

	// 認証必須のルート
	if h.History != nil {
		auth := apiGroup.Group("/")
		auth.Use(jwtmw.AuthRequired(opts.JWTSecret))
		auth.GET("/diagnoses", h.History.List)
	}

	return r
}

// corsMiddleware はoriginsが空なら全オリジンを許可します。
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
