package usecase_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"plant_backend/internal/feature/diagnosis/domain/entity"
)

// ErrAPI はモックと期待値の間で共有されるセンチネルエラーです。
var ErrAPI = errors.New("api error")

type mockFetcher struct {
	FetchFunc  func(ctx context.Context, url string) (*entity.Image, error)
	FetchCalls int
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*entity.Image, error) {
	m.FetchCalls++
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}
	return &entity.Image{Data: []byte("img"), ContentType: "image/jpeg"}, nil
}

type mockClassifier struct {
	ClassifyFunc  func(ctx context.Context, img *entity.Image) ([]entity.Prediction, error)
	ClassifyCalls int
}

func (m *mockClassifier) Classify(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
	m.ClassifyCalls++
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, img)
	}
	return nil, errors.New("ClassifyFunc is not implemented")
}

type mockHistory struct {
	SaveFunc       func(ctx context.Context, d *entity.Diagnosis) error
	ListRecentFunc func(ctx context.Context, limit int) ([]entity.Diagnosis, error)
	Saved          []entity.Diagnosis
}

func (m *mockHistory) Save(ctx context.Context, d *entity.Diagnosis) error {
	m.Saved = append(m.Saved, *d)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, d)
	}
	return nil
}

func (m *mockHistory) ListRecent(ctx context.Context, limit int) ([]entity.Diagnosis, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

type mockRecorder struct {
	mu         sync.Mutex
	Conditions []string
	Outcomes   []string
}

func (m *mockRecorder) RecordDiagnosis(condition string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Conditions = append(m.Conditions, condition)
}

func (m *mockRecorder) ObserveInference(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes = append(m.Outcomes, outcome)
}

type mockAdvisor struct {
	AdviseFunc  func(ctx context.Context, prompt string) (string, error)
	AdviseCalls int
}

func (m *mockAdvisor) Advise(ctx context.Context, prompt string) (string, error) {
	m.AdviseCalls++
	if m.AdviseFunc != nil {
		return m.AdviseFunc(ctx, prompt)
	}
	return "", errors.New("AdviseFunc is not implemented")
}
