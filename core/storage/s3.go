package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	appconfig "tutortrack/core/config"
	"tutortrack/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStorage uploads and deletes public objects (profile pictures)
type ObjectStorage interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

type s3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Storage configures an S3 client from app config. Works with AWS S3 or
// any S3-compatible endpoint (MinIO, DigitalOcean Spaces).
func NewS3Storage(cfg *appconfig.Config) (ObjectStorage, error) {
	if cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not configured")
	}

	client := s3.New(s3.Options{
		Region:       cfg.S3.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		UsePathStyle: cfg.S3.Endpoint != "",
		BaseEndpoint: endpointOrNil(cfg.S3.Endpoint),
	})

	logger.Info("S3 storage initialized", "bucket", cfg.S3.Bucket, "region", cfg.S3.Region)

	return &s3Storage{
		client:    client,
		bucket:    cfg.S3.Bucket,
		publicURL: strings.TrimRight(cfg.S3.PublicURL, "/"),
	}, nil
}

func endpointOrNil(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}

func (s *s3Storage) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Storage:Upload", err)
		return "", err
	}

	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, key), nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

func (s *s3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Error("Storage:Delete", err)
		return err
	}
	return nil
}
