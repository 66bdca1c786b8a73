package config

import (
	"context"
	"fmt"

	"github.com/marmos91/txfs/pkg/blob"
	blobbadger "github.com/marmos91/txfs/pkg/blob/badger"
	blobfs "github.com/marmos91/txfs/pkg/blob/fs"
	blobmemory "github.com/marmos91/txfs/pkg/blob/memory"
	blobs3 "github.com/marmos91/txfs/pkg/blob/s3"
	"github.com/marmos91/txfs/pkg/metrics"
)

// NewStore creates a storage backend from configuration. When metrics are
// enabled the store is wrapped so every backend call is recorded.
//
// The caller owns the returned store and must Close it when done.
func NewStore(ctx context.Context, cfg StoreConfig) (blob.Store, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return blob.NewInstrumented(store, metrics.NewStoreMetrics()), nil
}

func newStore(ctx context.Context, cfg StoreConfig) (blob.Store, error) {
	switch cfg.Type {
	case "memory", "":
		return blobmemory.New(), nil

	case "filesystem":
		if cfg.Filesystem.Path == "" {
			return nil, fmt.Errorf("filesystem store requires path to be set")
		}
		return blobfs.NewWithPath(cfg.Filesystem.Path)

	case "badger":
		return blobbadger.New(blobbadger.Config{
			Path:     cfg.Badger.Path,
			InMemory: cfg.Badger.InMemory,
		})

	case "s3":
		return blobs3.New(ctx, blobs3.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
		})

	default:
		return nil, fmt.Errorf("unknown store type: %q", cfg.Type)
	}
}
