package vision

import (
	"testing"

	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/stretchr/testify/assert"

	"plant_backend/internal/feature/diagnosis/domain/entity"
)

func TestToPredictions(t *testing.T) {
	t.Parallel()

	got := toPredictions([]*visionpb.EntityAnnotation{
		{Description: "Leaf", Score: 0.5},
		{Description: "Plant", Score: 0.25},
	})

	assert.Equal(t, []entity.Prediction{
		{Label: "Leaf", Score: 0.5},
		{Label: "Plant", Score: 0.25},
	}, got)
	assert.Empty(t, toPredictions(nil))
}
