// Package domain はdiagnosisフィーチャーのドメインルール（病名テーブルとエラー種別）を定義します。
package domain

import (
	"sort"

	"plant_backend/internal/feature/diagnosis/domain/entity"
)

// Fallback はテーブルにないラベルに対して返される情報です。
var Fallback = entity.DiseaseInfo{
	Name: "Unknown Condition",
	Care: "Could not identify the condition from the image. Please try a clearer picture or consult a local expert.",
}

// diseases はモデルのラベルをキーとする病名テーブルです。初期化後は変更しません。
var diseases = map[string]entity.DiseaseInfo{
	"A healthy tomato leaf": {
		Name: "Healthy",
		Care: "Your tomato plant looks healthy! Keep up the good work. Ensure consistent watering, proper nutrients, and good sunlight exposure.",
	},
	"A tomato leaf with Leaf Mold": {
		Name: "Leaf Mold",
		Care: "Improve air circulation and reduce humidity. Use resistant tomato varieties. Apply fungicides if necessary. Water early in the day so leaves can dry.",
	},
	"A tomato leaf with Target Spot": {
		Name: "Target Spot",
		Care: "Apply fungicides. Improve air circulation. Remove and destroy infected leaves and fruit. Water at the base of the plant.",
	},
	"A tomato leaf with Late Blight": {
		Name: "Late Blight",
		Care: "This is a serious disease. Apply fungicides preventively. Ensure proper spacing for air flow. Water at the base of the plant, not on the leaves. Destroy infected plants immediately.",
	},
	"A tomato leaf with Early Blight": {
		Name: "Early Blight",
		Care: "Apply fungicides containing mancozeb or chlorothalonil. Mulch around the base of the plants and practice crop rotation. Remove and destroy infected plant debris.",
	},
	"A tomato leaf with Bacterial Spot": {
		Name: "Bacterial Spot",
		Care: "Use copper-based fungicides. Prune affected leaves and avoid overhead watering to reduce humidity. Ensure good air circulation around plants.",
	},
	"A tomato leaf with Septoria Leaf Spot": {
		Name: "Septoria Leaf Spot",
		Care: "Remove infected lower leaves. Use fungicides like chlorothalonil. Practice crop rotation and keep weeds under control.",
	},
	"A tomato leaf with Tomato Mosaic Virus": {
		Name: "Mosaic Virus",
		Care: "No cure. Remove and destroy infected plants. Wash hands and tools thoroughly after handling infected plants to prevent transmission.",
	},
	"A tomato leaf with Tomato Yellow Leaf Curl Virus": {
		Name: "Yellow Leaf Curl Virus",
		Care: "There is no cure for this virus. Remove and destroy infected plants immediately to prevent spread. Control whiteflies, which transmit the virus, using insecticides or reflective mulch.",
	},
	"A tomato leaf with Spider Mites Two-spotted Spider Mite": {
		Name: "Spider Mites (Two-spotted)",
		Care: "Use insecticidal soap or neem oil. Increase humidity as mites thrive in dry conditions. Introduce natural predators like ladybugs.",
	},
}

// Resolve はラベルに完全一致する病名情報を返します。
// 一致しない場合（大文字小文字や空白の違いを含む）はFallbackを返します。
func Resolve(label string) entity.DiseaseInfo {
	if info, ok := diseases[label]; ok {
		return info
	}
	return Fallback
}

// Labels は既知のラベルをソート済みの新しいスライスで返します。
func Labels() []string {
	out := make([]string, 0, len(diseases))
	for l := range diseases {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
