// Package vision はGoogle Cloud Vision APIを使用した画像分類クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"plant_backend/internal/feature/diagnosis/domain"
	"plant_backend/internal/feature/diagnosis/domain/entity"
	"plant_backend/internal/feature/diagnosis/usecase"
)

// MaxLabels はLABEL_DETECTIONで要求する最大件数です。
const MaxLabels = 10

// VisionClassifier はLABEL_DETECTIONの結果を推論結果として返します。
// ラベルはVision APIの語彙なので、病名テーブルに一致しない場合はフォールバックになります。
type VisionClassifier struct {
	client *gvision.ImageAnnotatorClient
}

// VisionClassifierがClassifierを実装していることをコンパイル時に検証します。
var _ usecase.Classifier = (*VisionClassifier)(nil)

// NewVisionClassifier はADCを使用してVisionClassifierの新しいインスタンスを生成します。
func NewVisionClassifier(ctx context.Context) (*VisionClassifier, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionClassifier{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionClassifier) Close() error {
	return v.client.Close()
}

// Classify は画像のラベルを検出します。
func (v *VisionClassifier) Classify(ctx context.Context, img *entity.Image) ([]entity.Prediction, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: img.Data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: MaxLabels},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, domain.NewInferenceError(err.Error(), err)
	}
	if len(resp.Responses) == 0 {
		return nil, nil
	}
	if e := resp.Responses[0].Error; e != nil {
		return nil, domain.NewInferenceError(e.Message, nil)
	}

	return toPredictions(resp.Responses[0].LabelAnnotations), nil
}

func toPredictions(labels []*visionpb.EntityAnnotation) []entity.Prediction {
	out := make([]entity.Prediction, 0, len(labels))
	for _, l := range labels {
		out = append(out, entity.Prediction{
			Label: l.Description,
			Score: float64(l.Score),
		})
	}
	return out
}
