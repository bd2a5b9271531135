package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plant_backend/internal/feature/diagnosis/domain"
	"plant_backend/internal/feature/diagnosis/domain/entity"
	"plant_backend/internal/feature/diagnosis/usecase"
)

func TestSelectBest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		preds  []entity.Prediction
		want   entity.Prediction
		wantOK bool
	}{
		{
			name:   "empty list",
			preds:  nil,
			wantOK: false,
		},
		{
			name:   "single prediction",
			preds:  []entity.Prediction{{Label: "A", Score: 0.1}},
			want:   entity.Prediction{Label: "A", Score: 0.1},
			wantOK: true,
		},
		{
			name: "order not trusted",
			preds: []entity.Prediction{
				{Label: "A", Score: 0.2},
				{Label: "B", Score: 0.7},
				{Label: "C", Score: 0.1},
			},
			want:   entity.Prediction{Label: "B", Score: 0.7},
			wantOK: true,
		},
		{
			name: "tie keeps first",
			preds: []entity.Prediction{
				{Label: "A", Score: 0.5},
				{Label: "B", Score: 0.5},
			},
			want:   entity.Prediction{Label: "A", Score: 0.5},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := usecase.SelectBest(tt.preds)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyzeUsecase_Analyze(t *testing.T) {
	t.Parallel()

	const url = "https://blob.example/abc1234.jpg"

	tests := []struct {
		name          string
		imageURL      string
		fetchFunc     func(ctx context.Context, url string) (*entity.Image, error)
		classifyFunc  func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error)
		wantResult    *entity.AnalysisResult
		wantKind      domain.Kind
		wantMessage   string
		wantDetails   string
		wantClassify  int
		wantOutcomes  []string
		wantRecorded  []string
	}{
		{
			name:     "success: highest score wins",
			imageURL: url,
			classifyFunc: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
				return []entity.Prediction{
					{Label: "A tomato leaf with Early Blight", Score: 0.03},
					{Label: "A tomato leaf with Late Blight", Score: 0.91},
					{Label: "A healthy tomato leaf", Score: 0.06},
				}, nil
			},
			wantResult: &entity.AnalysisResult{
				Label: "A tomato leaf with Late Blight",
				Name:  "Late Blight",
				Care:  domain.Resolve("A tomato leaf with Late Blight").Care,
				Score: 0.91,
			},
			wantClassify: 1,
			wantOutcomes: []string{"success"},
			wantRecorded: []string{"Late Blight"},
		},
		{
			name:     "success: unknown label falls back",
			imageURL: url,
			classifyFunc: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
				return []entity.Prediction{{Label: "Potato___healthy", Score: 0.8}}, nil
			},
			wantResult: &entity.AnalysisResult{
				Label: "Potato___healthy",
				Name:  domain.Fallback.Name,
				Care:  domain.Fallback.Care,
				Score: 0.8,
			},
			wantClassify: 1,
			wantOutcomes: []string{"success"},
			wantRecorded: []string{domain.Fallback.Name},
		},
		{
			name:         "error: empty url",
			imageURL:     "   ",
			wantKind:     domain.KindInvalidInput,
			wantMessage:  domain.MessageImageURLRequired,
			wantClassify: 0,
		},
		{
			name:     "error: fetch fails",
			imageURL: url,
			fetchFunc: func(ctx context.Context, u string) (*entity.Image, error) {
				return nil, errors.New("404 Not Found")
			},
			wantKind:     domain.KindFetch,
			wantMessage:  fmt.Sprintf(domain.MessageFetchFailed, url),
			wantClassify: 0,
		},
		{
			name:     "error: inference fails with details",
			imageURL: url,
			classifyFunc: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
				return nil, domain.NewInferenceError(`{"error":"Model is loading"}`, nil)
			},
			wantKind:     domain.KindInference,
			wantMessage:  domain.MessageInferenceFailed,
			wantDetails:  `{"error":"Model is loading"}`,
			wantClassify: 1,
			wantOutcomes: []string{"inference"},
		},
		{
			name:     "error: empty predictions",
			imageURL: url,
			classifyFunc: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
				return []entity.Prediction{}, nil
			},
			wantKind:     domain.KindMalformedResponse,
			wantMessage:  domain.MessageInvalidPredictions,
			wantClassify: 1,
			wantOutcomes: []string{"malformed_response"},
		},
		{
			name:     "error: non-domain error becomes unknown",
			imageURL: url,
			classifyFunc: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
				return nil, ErrAPI
			},
			wantKind:     domain.KindUnknown,
			wantMessage:  domain.MessageUnknown,
			wantClassify: 1,
			wantOutcomes: []string{"unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fetcher := &mockFetcher{FetchFunc: tt.fetchFunc}
			classifier := &mockClassifier{ClassifyFunc: tt.classifyFunc}
			recorder := &mockRecorder{}
			uc := usecase.NewAnalyzeUsecase(fetcher, classifier, nil, recorder)

			got, err := uc.Analyze(context.Background(), tt.imageURL)

			assert.Equal(t, tt.wantClassify, classifier.ClassifyCalls)
			assert.Equal(t, tt.wantOutcomes, recorder.Outcomes)
			assert.Equal(t, tt.wantRecorded, recorder.Conditions)

			if tt.wantResult != nil {
				require.NoError(t, err)
				assert.Equal(t, tt.wantResult, got)
				return
			}

			require.Error(t, err)
			assert.Nil(t, got)
			var de *domain.Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.wantKind, de.Kind)
			assert.Equal(t, tt.wantMessage, de.Message)
			assert.Equal(t, tt.wantDetails, de.Details)
		})
	}
}

func TestAnalyzeUsecase_Analyze_SavesHistory(t *testing.T) {
	t.Parallel()

	classifier := &mockClassifier{
		ClassifyFunc: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
			return []entity.Prediction{{Label: "A healthy tomato leaf", Score: 0.99}}, nil
		},
	}
	history := &mockHistory{}
	uc := usecase.NewAnalyzeUsecase(&mockFetcher{}, classifier, history, nil)

	_, err := uc.Analyze(context.Background(), "https://blob.example/x.png")
	require.NoError(t, err)

	require.Len(t, history.Saved, 1)
	saved := history.Saved[0]
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "https://blob.example/x.png", saved.ImageURL)
	assert.Equal(t, "A healthy tomato leaf", saved.Label)
	assert.Equal(t, "Healthy", saved.Name)
	assert.Equal(t, 0.99, saved.Score)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestAnalyzeUsecase_Analyze_HistoryFailureIgnored(t *testing.T) {
	t.Parallel()

	classifier := &mockClassifier{
		ClassifyFunc: func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
			return []entity.Prediction{{Label: "A tomato leaf with Leaf Mold", Score: 0.7}}, nil
		},
	}
	history := &mockHistory{
		SaveFunc: func(ctx context.Context, d *entity.Diagnosis) error { return errors.New("db down") },
	}
	uc := usecase.NewAnalyzeUsecase(&mockFetcher{}, classifier, history, nil)

	got, err := uc.Analyze(context.Background(), "https://blob.example/x.png")
	require.NoError(t, err)
	assert.Equal(t, "Leaf Mold", got.Name)
}

func TestAnalyzeUsecase_Analyze_PassesFetchedImage(t *testing.T) {
	t.Parallel()

	img := &entity.Image{Data: []byte{0xff, 0xd8, 0xff}, ContentType: "image/jpeg"}
	fetcher := &mockFetcher{
		FetchFunc: func(ctx context.Context, url string) (*entity.Image, error) { return img, nil },
	}
	var received *entity.Image
	classifier := &mockClassifier{
		ClassifyFunc: func(ctx context.Context, in *entity.Image) ([]entity.Prediction, error) {
			received = in
			return []entity.Prediction{{Label: "A healthy tomato leaf", Score: 1}}, nil
		},
	}

	_, err := usecase.NewAnalyzeUsecase(fetcher, classifier, nil, nil).Analyze(context.Background(), "https://x")
	require.NoError(t, err)
	assert.Same(t, img, received)
}

func TestAnalyzeUsecase_Conditions(t *testing.T) {
	t.Parallel()

	uc := usecase.NewAnalyzeUsecase(&mockFetcher{}, &mockClassifier{}, nil, nil)
	conds := uc.Conditions()

	require.Len(t, conds, len(domain.Labels()))
	for i, l := range domain.Labels() {
		assert.Equal(t, l, conds[i].Label)
		assert.Equal(t, domain.Resolve(l), conds[i].Info)
	}
}
