package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"ai-access-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

type objectBackend struct {
	client     storage.Client
	bucket     string
	objectName string
}

// NewObjectStore returns a store persisted as one JSON object in an S3/MinIO bucket.
func NewObjectStore(client storage.Client, bucket, objectName string) *DocumentStore {
	return &DocumentStore{backend: &objectBackend{client: client, bucket: bucket, objectName: objectName}}
}

func (b *objectBackend) read(ctx context.Context) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.objectName, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get store object %s/%s: %w", b.bucket, b.objectName, err)
	}
	defer func() { _ = obj.Close() }()

	// Minio reports a missing object on the first read, not on GetObject.
	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read store object %s/%s: %w", b.bucket, b.objectName, err)
	}
	return data, nil
}

func (b *objectBackend) write(ctx context.Context, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, b.objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to put store object %s/%s: %w", b.bucket, b.objectName, err)
	}
	return nil
}

func (b *objectBackend) close() error {
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
