// Package api はHTTP APIのリクエスト/レスポンス型を定義します。
// サーバーのハンドラーとクライアント（cmd/leafcheck）の双方から利用されます。
package api

import "time"

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StoredObjectResponse はアップロード済みオブジェクトの記述子です。
// クライアントが期待するblob記述子に合わせてキーはcamelCaseです。
type StoredObjectResponse struct {
	URL                string `json:"url"`
	DownloadURL        string `json:"downloadUrl"`
	Pathname           string `json:"pathname"`
	ContentType        string `json:"contentType"`
	ContentDisposition string `json:"contentDisposition"`
	Size               int64  `json:"size"`
	Width              int    `json:"width,omitempty"`
	Height             int    `json:"height,omitempty"`
}

// AnalyzeRequest は POST /api/analyze のリクエストボディです。
type AnalyzeRequest struct {
	ImageURL string `json:"imageUrl"`
}

// AnalyzeResponse は診断結果です。
type AnalyzeResponse struct {
	Name  string  `json:"name"`
	Care  string  `json:"care"`
	Score float64 `json:"score"`
}

// ConditionResponse は既知の病名ラベルとその情報です。
type ConditionResponse struct {
	Label string `json:"label"`
	Name  string `json:"name"`
	Care  string `json:"care"`
}

// DiagnosisResponse は診断履歴の1件です。
type DiagnosisResponse struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Label     string    `json:"label"`
	Name      string    `json:"name"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConsultRequest は POST /api/consult のリクエストボディです。
type ConsultRequest struct {
	Name string `json:"name" binding:"required"`
}

// ConsultResponse はAIが生成したケアアドバイスです。
type ConsultResponse struct {
	Name   string `json:"name"`
	Advice string `json:"advice"`
}
