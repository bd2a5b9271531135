package s3

// Config はS3互換ストレージの接続設定です。
type Config struct {
	Endpoint        string // 空の場合はAWS標準のエンドポイント
	Region          string
	Bucket          string
	AccessKeyID     string // 空の場合はSDKのデフォルト認証チェーン
	SecretAccessKey string
	PublicBaseURL   string // 公開URLの接頭辞（CDNなど）。空の場合はエンドポイントから組み立てます
}
