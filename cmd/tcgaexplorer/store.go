package main

import (
	"context"
	"fmt"
	"slices"

	tcgaexplorer "github.com/nicolas-legroux/tcgaExplorer"
	"github.com/nicolas-legroux/tcgaExplorer/blobstore"
	"github.com/nicolas-legroux/tcgaExplorer/blobstore/minio"
	"github.com/nicolas-legroux/tcgaExplorer/blobstore/s3"
	"github.com/nicolas-legroux/tcgaExplorer/internal/cache"
	"github.com/nicolas-legroux/tcgaExplorer/resource"
)

type stores struct {
	input    blobstore.BlobStore
	output   blobstore.BlobStore
	recorder tcgaexplorer.RunRecorder
}

// openStores builds the input and output stores and, when a table is
// configured, the DynamoDB run log.
func openStores(ctx context.Context, cfg tcgaexplorer.Config, rc *resource.Controller) (stores, error) {
	var out stores
	var err error

	out.input, err = openStore(ctx, cfg.Store)
	if err != nil {
		return out, fmt.Errorf("input store: %w", err)
	}
	out.output = out.input
	if cfg.Output.Store != nil {
		if out.output, err = openStore(ctx, *cfg.Output.Store); err != nil {
			return out, fmt.Errorf("output store: %w", err)
		}
	}
	if cfg.Resources.CacheBytes > 0 {
		out.input = blobstore.NewCachingStore(out.input, cache.NewLRU(cfg.Resources.CacheBytes, rc))
	}

	if cfg.RunLog.Table != "" {
		_, ddb, err := s3.NewClients(ctx, s3ClientConfig(cfg.Store))
		if err != nil {
			return out, fmt.Errorf("run log: %w", err)
		}
		out.recorder = s3.NewRunLog(ddb, cfg.RunLog.Table)
	}
	return out, nil
}

func openStore(ctx context.Context, sc tcgaexplorer.StoreConfig) (blobstore.BlobStore, error) {
	switch sc.Kind {
	case tcgaexplorer.StoreLocal:
		return blobstore.NewLocalStore(sc.Path), nil
	case tcgaexplorer.StoreS3:
		client, _, err := s3.NewClients(ctx, s3ClientConfig(sc))
		if err != nil {
			return nil, err
		}
		return s3.NewStore(client, sc.Bucket, sc.Prefix), nil
	case tcgaexplorer.StoreMinIO:
		client, err := minio.NewClient(minio.Config{
			Endpoint:  sc.Endpoint,
			AccessKey: sc.AccessKey,
			SecretKey: sc.SecretKey,
			Region:    sc.Region,
			Secure:    sc.Secure,
		})
		if err != nil {
			return nil, err
		}
		return minio.NewStore(client, sc.Bucket, sc.Prefix), nil
	default:
		return nil, fmt.Errorf("%w: unknown store kind %q", tcgaexplorer.ErrInvalidConfig, sc.Kind)
	}
}

func s3ClientConfig(sc tcgaexplorer.StoreConfig) s3.ClientConfig {
	return s3.ClientConfig{
		Region:       sc.Region,
		Endpoint:     sc.Endpoint,
		UsePathStyle: sc.UsePathStyle,
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
