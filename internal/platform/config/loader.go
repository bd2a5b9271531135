package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvConfigFile names the environment variable pointing at an optional YAML file.
const EnvConfigFile = "CONFIG_FILE"

// Load builds a Config by layering sources (low -> high precedence):
//  1. defaults (New)
//  2. YAML file if CONFIG_FILE is set
//  3. environment variables, lower-cased (REDIS_HOST -> redis_host)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %q: %w", path, err)
		}
	}

	envProvider := env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would make the service unusable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return ErrEmptyAddr
	}
	switch c.StorageDriver {
	case "local", "s3":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.StorageDriver)
	}
	if c.StorageDriver == "s3" && c.S3Bucket == "" {
		return ErrMissingBucket
	}
	switch c.InferenceProvider {
	case "huggingface", "vision":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownInferenceProvider, c.InferenceProvider)
	}
	switch c.DBDriver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDBDriver, c.DBDriver)
	}
	if c.MaxUploadBytes <= 0 {
		return ErrInvalidUploadLimit
	}
	return nil
}
