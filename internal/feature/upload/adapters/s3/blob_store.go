// Package s3 はS3互換ストレージに保存するBlobStore実装を提供します。
package s3

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"plant_backend/internal/feature/upload/domain/entity"
	"plant_backend/internal/feature/upload/usecase"
)

// API はBlobStoreが使うS3クライアントのメソッドです。
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// BlobStore はオブジェクトをpublic-readで保存します。
type BlobStore struct {
	client API
	cfg    Config
}

var _ usecase.BlobStore = (*BlobStore)(nil)

// NewBlobStore はSDKのデフォルト設定にcfgを重ねたクライアントでBlobStoreを生成します。
// Endpointが設定されている場合はパススタイルでアクセスします（MinIOなど）。
func NewBlobStore(ctx context.Context, cfg Config) (*BlobStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewBlobStoreWithClient(client, cfg), nil
}

// NewBlobStoreWithClient は生成済みのクライアントでBlobStoreを生成します。
func NewBlobStoreWithClient(client API, cfg Config) *BlobStore {
	return &BlobStore{client: client, cfg: cfg}
}

// EnsureBucket はバケットが存在しなければ作成します。
func (s *BlobStore) EnsureBucket(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.cfg.Bucket)}); err == nil {
		return nil
	}

	in := &s3.CreateBucketInput{Bucket: aws.String(s.cfg.Bucket)}
	// us-east-1 はLocationConstraintを受け付けない
	if s.cfg.Region != "" && s.cfg.Region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.cfg.Region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, in); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.cfg.Bucket, err)
	}
	slog.Info("bucket created", "bucket", s.cfg.Bucket)
	return nil
}

// Put はオブジェクトを保存して公開URLを返します。
func (s *BlobStore) Put(ctx context.Context, name string, data []byte, contentType string) (*entity.StoredObject, error) {
	disposition := fmt.Sprintf(`inline; filename="%s"`, name)
	in := &s3.PutObjectInput{
		Bucket:             aws.String(s.cfg.Bucket),
		Key:                aws.String(name),
		Body:               bytes.NewReader(data),
		ContentLength:      aws.Int64(int64(len(data))),
		ContentDisposition: aws.String(disposition),
		ACL:                types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		slog.Error("failed to upload object to S3", "bucket", s.cfg.Bucket, "key", name, "error", err)
		return nil, fmt.Errorf("s3 put %s: %w", name, err)
	}

	objURL := s.objectURL(name)
	return &entity.StoredObject{
		URL:                objURL,
		DownloadURL:        objURL + "?download=1",
		Pathname:           name,
		ContentType:        contentType,
		ContentDisposition: disposition,
		Size:               int64(len(data)),
	}, nil
}

func (s *BlobStore) objectURL(key string) string {
	escaped := url.PathEscape(key)
	switch {
	case s.cfg.PublicBaseURL != "":
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + escaped
	case s.cfg.Endpoint != "":
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + escaped
	default:
		region := s.cfg.Region
		if region == "" {
			region = "us-east-1"
		}
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, region, escaped)
	}
}
