package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"plant_backend/internal/app/di"
	"plant_backend/internal/app/router"
	diagnosisfetcher "plant_backend/internal/feature/diagnosis/adapters/fetcher"
	diagnosishandler "plant_backend/internal/feature/diagnosis/transport/handler"
	diagnosisusecase "plant_backend/internal/feature/diagnosis/usecase"
	uploadhandler "plant_backend/internal/feature/upload/transport/handler"
	uploadusecase "plant_backend/internal/feature/upload/usecase"
	"plant_backend/internal/platform/config"
	infrahttp "plant_backend/internal/platform/http"
	"plant_backend/internal/platform/http/handler"
	"plant_backend/internal/platform/logging"
	"plant_backend/internal/platform/metrics"
	infraredis "plant_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// APIキー・JWT_SECRETチェック（開発中の注意喚起）
	if cfg.InferenceProvider == "huggingface" && cfg.HuggingFaceAPIKey == "" {
		slog.Warn("HUGGINGFACE_API_KEY is not set; inference requests will likely be rejected")
	}
	if cfg.DBDriver != "" && cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; the history endpoint will reject every request")
	}

	// Redis
	rdb, err := infraredis.NewRedisClient(ctx, infraredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	m := metrics.New()

	// Adapters
	store, blobDir, err := di.NewBlobStore(ctx, cfg)
	if err != nil {
		return err
	}
	classifier, closeClassifier, err := di.NewClassifier(ctx, cfg, rdb)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeClassifier(); err != nil {
			slog.Error("failed to close classifier", "error", err)
		}
	}()
	historyRepo, gdb, err := di.NewHistoryRepository(cfg)
	if err != nil {
		return err
	}
	advisor, err := di.NewCareAdvisor(ctx, cfg)
	if err != nil {
		return err
	}
	fetcher := diagnosisfetcher.NewHTTPFetcher(infrahttp.NewHTTPClient(cfg.HTTPTimeout), diagnosisfetcher.DefaultMaxBytes)

	// Usecase / Handler
	uploadUC := uploadusecase.NewUploadUsecase(store, uploadusecase.NanoID, m)
	analyzeUC := diagnosisusecase.NewAnalyzeUsecase(fetcher, classifier, historyRepo, m)

	handlers := router.Handlers{
		Upload:    uploadhandler.NewUploadHandler(uploadUC, cfg.MaxUploadBytes),
		Diagnosis: diagnosishandler.NewDiagnosisHandler(analyzeUC),
	}
	if historyRepo != nil {
		handlers.History = diagnosishandler.NewHistoryHandler(diagnosisusecase.NewHistoryUsecase(historyRepo))
	}
	if advisor != nil {
		handlers.Consult = diagnosishandler.NewConsultHandler(diagnosisusecase.NewConsultUsecase(advisor))
	}

	// ルータ生成
	r := router.NewRouter(handlers, router.Options{
		Metrics:            m,
		HealthChecks:       healthChecks(rdb, gdb),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		JWTSecret:          cfg.JWTSecret,
		BlobDir:            blobDir,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "storage", cfg.StorageDriver, "inference", cfg.InferenceProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// healthChecks は設定済みの依存先だけを /healthz の確認対象にします。
func healthChecks(rdb *redisv9.Client, gdb *gorm.DB) []handler.Check {
	var checks []handler.Check
	if rdb != nil {
		checks = append(checks, handler.Check{
			Name:  "redis",
			Probe: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	if gdb != nil {
		checks = append(checks, handler.Check{
			Name: "db",
			Probe: func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		})
	}
	return checks
}
