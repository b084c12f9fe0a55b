package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/shopcore/admin-service/internal/platform/logger"
)

// Storage uploads product images to a MinIO/S3 bucket and returns the
// public URL stored on the product record.
type Storage struct {
	client *minio.Client
	bucket string
	log    logger.Logger
}

func NewStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool, log logger.Logger) (*Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(context.Background(), bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucket, err)
		}
	}

	log.Infof("MinIO storage initialized: endpoint=%s bucket=%s", endpoint, bucket)
	return &Storage{client: client, bucket: bucket, log: log}, nil
}

// Upload stores the image under a generated object key, keeping the
// original file extension, and returns its URL.
func (s *Storage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

	info, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.log.Infof("Uploaded image %s (%d bytes) to %s", originalFileName, info.Size, url)
	return url, nil
}
