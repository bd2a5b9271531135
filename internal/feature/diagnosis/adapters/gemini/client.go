// Package gemini はGoogle Gemini APIを使用したケアアドバイス生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"plant_backend/internal/feature/diagnosis/usecase"
)

// DefaultModel はGemini APIのデフォルトモデルです。
const DefaultModel = "gemini-2.5-flash"

// GeminiAdvisor はGoogle Gemini APIでケアアドバイスを生成します。
type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

// GeminiAdvisorがCareAdvisorを実装していることをコンパイル時に検証します。
var _ usecase.CareAdvisor = (*GeminiAdvisor)(nil)

// NewGeminiAdvisor はADCを使用してGeminiAdvisorの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION
// または GOOGLE_API_KEY が必要です。
func NewGeminiAdvisor(ctx context.Context) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiAdvisor{client: client, model: DefaultModel}, nil
}

// NewGeminiAdvisorWithClient は生成済みのクライアントとモデル名からGeminiAdvisorを生成します。
func NewGeminiAdvisorWithClient(client *genai.Client, model string) *GeminiAdvisor {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiAdvisor{client: client, model: model}
}

// Advise はプロンプトからアドバイス文を生成します。
func (g *GeminiAdvisor) Advise(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}
