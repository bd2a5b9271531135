package di

import (
	"context"
	"fmt"

	"plant_backend/internal/feature/diagnosis/adapters/gemini"
	"plant_backend/internal/feature/diagnosis/usecase"
	"plant_backend/internal/platform/config"
)

// NewCareAdvisor returns the Gemini advisor, or nil when cfg.GeminiEnabled is false.
func NewCareAdvisor(ctx context.Context, cfg *config.Config) (usecase.CareAdvisor, error) {
	if !cfg.GeminiEnabled {
		return nil, nil
	}
	a, err := gemini.NewGeminiAdvisor(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gemini advisor: %w", err)
	}
	return a, nil
}
