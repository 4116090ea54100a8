// Package storage wraps the MinIO client for the object store driver.
//
// The Client interface keeps only the calls the store needs (bucket checks and
// whole-object get/put), which keeps it easy to mock (see core/storage/mocks).
// It works against AWS S3 and self-hosted MinIO alike.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
