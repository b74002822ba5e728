package repository

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore mirrors accepted uploads to S3-compatible storage. Like
// the rest of the persistence layer it is fire-and-forget: a failed
// mirror leaves the document record without a storage path.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

type minioStore struct {
	client *minio.Client
	bucket string
}

// NewObjectStore creates a MinIO-backed ObjectStore and ensures the
// bucket exists.
func NewObjectStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (ObjectStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &minioStore{client: client, bucket: bucket}, nil
}

// Upload stores the payload and returns its bucket-qualified path.
func (s *minioStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}

	return fmt.Sprintf("%s/%s", s.bucket, objectName), nil
}

// NoopObjectStore never mirrors anything. Every upload reports an empty
// storage path.
type NoopObjectStore struct{}

func (NoopObjectStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	return "", nil
}
