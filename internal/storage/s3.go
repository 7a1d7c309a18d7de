package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"location-map/internal/config"
	"location-map/internal/types"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Store keeps the location as one JSON object in an S3-compatible bucket
type S3Store struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// NewS3Store connects to the endpoint and creates the bucket when it does not exist
func NewS3Store(ctx context.Context, cfg config.S3StorageConfig, logger *slog.Logger) (*S3Store, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("s3 storage requires endpoint, access key and secret key")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	s := &S3Store{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		logger: logger.With("component", "s3-store", "bucket", cfg.Bucket, "key", cfg.Key),
	}
	if err := s.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}

	s.logger.Info("connected to object storage", "endpoint", cfg.Endpoint)
	return s, nil
}

func (s *S3Store) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("created bucket")
	return nil
}

func (s *S3Store) Save(ctx context.Context, loc *types.Location) error {
	data, err := json.MarshalIndent(loc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}

	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		s.key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store object in S3: %w", err)
	}

	s.logger.Debug("saved location", "cidade", loc.Cidade)
	return nil
}

func (s *S3Store) Load(ctx context.Context) (*types.Location, error) {
	object, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer object.Close()

	// GetObject is lazy; a missing key only surfaces on the first read
	var loc types.Location
	if err := json.NewDecoder(object).Decode(&loc); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to decode JSON from stream: %w", err)
	}
	return &loc, nil
}

func (s *S3Store) Close() error {
	return nil
}
