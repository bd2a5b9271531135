// Package entity はdiagnosisフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Prediction は分類モデルが返す1件の推論結果です。
type Prediction struct {
	Label string  `json:"label"` // モデルのラベル（病名テーブルのキー）
	Score float64 `json:"score"` // 確信度（0.0 ~ 1.0）
}

// DiseaseInfo は病名と対処法です。
type DiseaseInfo struct {
	Name string
	Care string
}

// AnalysisResult は診断結果です。Scoreは採用した推論のスコアです。
type AnalysisResult struct {
	Label string
	Name  string
	Care  string
	Score float64
}

// Image は再取得した画像です。
type Image struct {
	Data        []byte
	ContentType string
}

// Condition は既知のラベルとその情報です。
type Condition struct {
	Label string
	Info  DiseaseInfo
}

// Diagnosis は保存された診断履歴です。
type Diagnosis struct {
	ID        string
	ImageURL  string
	Label     string
	Name      string
	Score     float64
	CreatedAt time.Time
}

// CareAdvice はAIが生成した追加のケアアドバイスです。
type CareAdvice struct {
	Name   string
	Advice string
}
