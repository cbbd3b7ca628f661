package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3Store implements ObjectStore on an S3-compatible bucket.
type s3Store struct {
	client     *s3.Client
	bucketName string
	log        *logger.Logger
}

// NewS3Store creates an S3 backed ObjectStore.
func NewS3Store(ctx context.Context, cfg config.S3Config, log *logger.Logger) (ObjectStore, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("s3: bucket_name is required")
	}

	opts := []func(*awsCfg.LoadOptions) error{awsCfg.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			// S3-compatible services (MinIO and the like) need path-style addressing.
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Info("S3 storage initialized", "endpoint", cfg.Endpoint, "bucket", cfg.BucketName)
	return &s3Store{
		client:     s3Client,
		bucketName: cfg.BucketName,
		log:        log.With("component", "S3Store"),
	}, nil
}

func (s *s3Store) OpenObject(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrObjectNotFound, s.bucketName, key)
		}
		s.log.Error("Failed to get object", "bucket", s.bucketName, "key", key, "error", err)
		return nil, err
	}
	return out.Body, nil
}
