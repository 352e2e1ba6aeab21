package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the part of *s3.Client the image storage uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// s3ImageStorage keeps images as objects of one bucket.
type s3ImageStorage struct {
	client  s3API
	bucket  string
	baseURL string
	logger  *logger.Logger
}

// NewS3ImageStorage builds an [ImageStorage] over an S3-compatible bucket.
//
// Static credentials are used when an access key is configured, otherwise
// the default AWS credential chain applies. A custom endpoint (MinIO and
// alike) switches the client to path-style addressing.
func NewS3ImageStorage(ctx context.Context, cfg config.Images, logger *logger.Logger) (ImageStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3.Region)}
	if cfg.S3.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		logger.Err(err).Str("func", "NewS3ImageStorage").Msg("error loading aws config")
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Debug().Str("bucket", cfg.S3.Bucket).Msg("creating s3 image storage")

	return &s3ImageStorage{
		client:  client,
		bucket:  cfg.S3.Bucket,
		baseURL: s3BaseURL(cfg),
		logger:  logger,
	}, nil
}

func (s *s3ImageStorage) SaveImage(ctx context.Context, name string, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3ImageStorage.SaveImage").Str("key", name).Msg("error uploading image")
		return fmt.Errorf("error uploading image: %w", err)
	}

	return nil
}

// DeleteImage removes the object. S3 reports success for missing keys, so
// [ErrImageNotFound] is never returned here.
func (s *s3ImageStorage) DeleteImage(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3ImageStorage.DeleteImage").Str("key", name).Msg("error deleting image")
		return fmt.Errorf("error deleting image: %w", err)
	}

	return nil
}

func (s *s3ImageStorage) URL(name string) string {
	return joinURL(s.baseURL, name)
}

// s3BaseURL picks the public prefix of stored objects: the configured base
// URL, the path-style endpoint URL, or the virtual-hosted AWS URL.
func s3BaseURL(cfg config.Images) string {
	switch {
	case cfg.BaseURL != "" && cfg.BaseURL != config.DefaultMediaURL:
		return cfg.BaseURL
	case cfg.S3.Endpoint != "":
		return joinURL(cfg.S3.Endpoint, cfg.S3.Bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3.Bucket, cfg.S3.Region)
	}
}
