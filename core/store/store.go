package store

import (
	"context"
	"fmt"

	"ai-access-manager/core/database"
	"ai-access-manager/core/storage"
)

// KeyUsers is the dataset key holding the merged user list.
const KeyUsers = "users"

// Store is a persisted key-value cache.
type Store interface {
	// Get decodes the value stored under key into out.
	// It returns false without error when the key is absent.
	Get(ctx context.Context, key string, out any) (bool, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value any) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Open builds the store selected by cfg.Driver.
// The database and object drivers connect using dbCfg and storageCfg.
func Open(ctx context.Context, cfg Config, dbCfg database.Config, storageCfg storage.Config) (Store, error) {
	switch cfg.Driver {
	case DriverFile, "":
		return NewFileStore(cfg.Path), nil
	case DriverDatabase:
		db, err := database.Connect(dbCfg)
		if err != nil {
			return nil, err
		}
		return NewDatabaseStore(ctx, db)
	case DriverObject:
		client, err := storage.NewClient(storageCfg)
		if err != nil {
			return nil, err
		}
		if err := storage.EnsureBucket(ctx, client, storageCfg.Bucket, storageCfg.Region); err != nil {
			return nil, err
		}
		return NewObjectStore(client, storageCfg.Bucket, cfg.ObjectName), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
