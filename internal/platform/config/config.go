// Package config defines the service configuration and how it is loaded.
package config

import "time"

// Config holds process-wide settings. Keys are flat and lower-cased so that
// environment variables such as HUGGINGFACE_API_KEY map to huggingface_api_key.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the slog handler: json or text.
	LogFormat string `koanf:"log_format"`
	// PublicBaseURL is the externally reachable base URL of this service.
	PublicBaseURL string `koanf:"public_base_url"`
	// MaxUploadBytes caps the size of an uploaded file.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
	// CORSAllowedOrigins lists allowed browser origins. Empty allows all.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// StorageDriver selects the blob store: local or s3.
	StorageDriver   string `koanf:"storage_driver"`
	LocalStorageDir string `koanf:"local_storage_dir"`

	S3Endpoint        string `koanf:"s3_endpoint"`
	S3Region          string `koanf:"s3_region"`
	S3Bucket          string `koanf:"s3_bucket"`
	S3AccessKeyID     string `koanf:"s3_access_key_id"`
	S3SecretAccessKey string `koanf:"s3_secret_access_key"`
	S3PublicBaseURL   string `koanf:"s3_public_base_url"`

	// InferenceProvider selects the classifier: huggingface or vision.
	InferenceProvider  string        `koanf:"inference_provider"`
	HuggingFaceAPIURL  string        `koanf:"huggingface_api_url"`
	HuggingFaceAPIKey  string        `koanf:"huggingface_api_key"`
	InferenceRateLimit int           `koanf:"inference_rate_limit"`
	HTTPTimeout        time.Duration `koanf:"http_timeout"`

	RedisHost     string        `koanf:"redis_host"`
	RedisPort     string        `koanf:"redis_port"`
	RedisPassword string        `koanf:"redis_password"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`

	// DBDriver enables the diagnosis history: sqlite or postgres. Empty disables it.
	DBDriver   string `koanf:"db_driver"`
	DBDSN      string `koanf:"db_dsn"`
	DBHost     string `koanf:"db_host"`
	DBPort     string `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`

	JWTSecret     string `koanf:"jwt_secret"`
	GeminiEnabled bool   `koanf:"gemini_enabled"`
}

// DefaultHuggingFaceAPIURL is the hosted tomato leaf classification model.
const DefaultHuggingFaceAPIURL = "https://api-inference.huggingface.co/models/wellCh4n/tomato-leaf-disease-classification-resnet50"

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:              ":8080",
		LogLevel:          "info",
		LogFormat:         "json",
		PublicBaseURL:     "http://localhost:8080",
		MaxUploadBytes:    10 << 20,
		StorageDriver:     "local",
		LocalStorageDir:   "./uploads",
		S3Region:          "us-east-1",
		InferenceProvider: "huggingface",
		HuggingFaceAPIURL: DefaultHuggingFaceAPIURL,
		HTTPTimeout:       30 * time.Second,
		RedisPort:         "6379",
		CacheTTL:          24 * time.Hour,
		DBPort:            "5432",
	}
}
