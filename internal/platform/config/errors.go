package config

import "errors"

var (
	// ErrEmptyAddr is returned when the listen address is empty.
	ErrEmptyAddr = errors.New("addr must not be empty")
	// ErrUnknownStorageDriver is returned for storage drivers other than local and s3.
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
	// ErrMissingBucket is returned when the s3 driver is selected without a bucket.
	ErrMissingBucket = errors.New("s3_bucket is required for the s3 storage driver")
	// ErrUnknownInferenceProvider is returned for providers other than huggingface and vision.
	ErrUnknownInferenceProvider = errors.New("unknown inference provider")
	// ErrUnknownDBDriver is returned for database drivers other than sqlite and postgres.
	ErrUnknownDBDriver = errors.New("unknown db driver")
	// ErrInvalidUploadLimit is returned when max_upload_bytes is not positive.
	ErrInvalidUploadLimit = errors.New("max_upload_bytes must be positive")
)
