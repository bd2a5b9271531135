// Package usecase はdiagnosisフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"plant_backend/internal/feature/diagnosis/domain"
	"plant_backend/internal/feature/diagnosis/domain/entity"
)

// ImageFetcher はURLから画像を再取得します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*entity.Image, error)
}

// Classifier は画像を分類し、推論結果の一覧を返します。
// 返却順序に意味はありません。
type Classifier interface {
	Classify(ctx context.Context, img *entity.Image) ([]entity.Prediction, error)
}

// HistoryRepository は診断履歴の永続化を行います。
type HistoryRepository interface {
	Save(ctx context.Context, d *entity.Diagnosis) error
	ListRecent(ctx context.Context, limit int) ([]entity.Diagnosis, error)
}

// Recorder は診断のメトリクスを記録します。
type Recorder interface {
	RecordDiagnosis(condition string)
	ObserveInference(outcome string, elapsed time.Duration)
}

type analyzeUsecase struct {
	fetcher    ImageFetcher
	classifier Classifier
	history    HistoryRepository // nilの場合は履歴を保存しない
	recorder   Recorder          // nilの場合は記録しない
	now        func() time.Time
	newID      func() string
}

// NewAnalyzeUsecase はanalyzeUsecaseの新しいインスタンスを生成します。
// historyとrecorderはnilでも構いません。
func NewAnalyzeUsecase(f ImageFetcher, c Classifier, h HistoryRepository, r Recorder) *analyzeUsecase {
	return &analyzeUsecase{
		fetcher:    f,
		classifier: c,
		history:    h,
		recorder:   r,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Analyze はURLの画像を再取得して分類し、最もスコアの高いラベルの病名情報を返します。
// 返すエラーは常に*domain.Errorです。
func (u *analyzeUsecase) Analyze(ctx context.Context, imageURL string) (*entity.AnalysisResult, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, domain.NewError(domain.KindInvalidInput, domain.MessageImageURLRequired, nil)
	}

	img, err := u.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		if domain.IsKind(err, domain.KindFetch) {
			return nil, domain.AsError(err)
		}
		return nil, domain.NewFetchError(imageURL, err)
	}

	start := time.Now()
	preds, err := u.classifier.Classify(ctx, img)
	if err != nil {
		de := domain.AsError(err)
		u.observe(string(de.Kind), start)
		return nil, de
	}

	best, ok := SelectBest(preds)
	if !ok {
		u.observe(string(domain.KindMalformedResponse), start)
		return nil, domain.NewError(domain.KindMalformedResponse, domain.MessageInvalidPredictions, nil)
	}
	u.observe("success", start)

	info := domain.Resolve(best.Label)
	result := &entity.AnalysisResult{
		Label: best.Label,
		Name:  info.Name,
		Care:  info.Care,
		Score: best.Score,
	}

	if u.recorder != nil {
		u.recorder.RecordDiagnosis(result.Name)
	}
	u.save(ctx, imageURL, result)

	return result, nil
}

// Conditions は既知のラベルと病名情報をラベル順で返します。
func (u *analyzeUsecase) Conditions() []entity.Condition {
	labels := domain.Labels()
	out := make([]entity.Condition, 0, len(labels))
	for _, l := range labels {
		out = append(out, entity.Condition{Label: l, Info: domain.Resolve(l)})
	}
	return out
}

// SelectBest は最もスコアの高い推論を返します。同点の場合は先に現れたものを採用します。
// 空の場合はfalseを返します。
func SelectBest(preds []entity.Prediction) (entity.Prediction, bool) {
	if len(preds) == 0 {
		return entity.Prediction{}, false
	}
	best := preds[0]
	for _, p := range preds[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best, true
}

func (u *analyzeUsecase) observe(outcome string, start time.Time) {
	if u.recorder != nil {
		u.recorder.ObserveInference(outcome, time.Since(start))
	}
}

// save は履歴を保存します。失敗しても診断結果は返します。
func (u *analyzeUsecase) save(ctx context.Context, imageURL string, r *entity.AnalysisResult) {
	if u.history == nil {
		return
	}
	d := &entity.Diagnosis{
		ID:        u.newID(),
		ImageURL:  imageURL,
		Label:     r.Label,
		Name:      r.Name,
		Score:     r.Score,
		CreatedAt: u.now().UTC(),
	}
	if err := u.history.Save(ctx, d); err != nil {
		slog.Warn("failed to save diagnosis history", "error", err, "image_url", imageURL)
	}
}
