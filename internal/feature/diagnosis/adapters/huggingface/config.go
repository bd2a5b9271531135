package huggingface

// Config はHugging Face Inference APIの接続設定です。
type Config struct {
	APIURL string // モデルのエンドポイントURL
	APIKey string // Bearerトークン。空の場合はAuthorizationヘッダーを送りません
}
