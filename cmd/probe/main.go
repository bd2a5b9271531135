// Command probe sends a local image straight to the configured inference
// endpoint and prints the raw predictions. Useful for checking API keys.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/joho/godotenv"

	"plant_backend/internal/feature/diagnosis/adapters/huggingface"
	"plant_backend/internal/feature/diagnosis/domain"
	"plant_backend/internal/feature/diagnosis/domain/entity"
	"plant_backend/internal/feature/diagnosis/usecase"
	"plant_backend/internal/platform/config"
	infrahttp "plant_backend/internal/platform/http"
	"plant_backend/internal/platform/logging"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <image>\n", os.Args[0])
		os.Exit(2)
	}
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logging.Setup(cfg.LogLevel, "text"); err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	if cfg.HuggingFaceAPIKey == "" {
		slog.Warn("HUGGINGFACE_API_KEY is not set")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		slog.Error("failed to read image", "error", err)
		os.Exit(1)
	}

	c := huggingface.NewClassifier(
		huggingface.Config{APIURL: cfg.HuggingFaceAPIURL, APIKey: cfg.HuggingFaceAPIKey},
		infrahttp.NewHTTPClient(cfg.HTTPTimeout),
		nil,
	)
	slog.Info("sending image", "url", cfg.HuggingFaceAPIURL, "bytes", len(data))

	preds, err := c.Classify(context.Background(), &entity.Image{Data: data, ContentType: mimetype.Detect(data).String()})
	if err != nil {
		de := domain.AsError(err)
		slog.Error("inference failed", "kind", de.Kind, "message", de.Message, "details", de.Details)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(preds)

	if best, ok := usecase.SelectBest(preds); ok {
		fmt.Printf("best: %s (%.4f) -> %s\n", best.Label, best.Score, domain.Resolve(best.Label).Name)
	}
}
