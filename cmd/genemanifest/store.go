package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/genemanifest/blobstore"
	"github.com/hupe1980/genemanifest/blobstore/minio"
	"github.com/hupe1980/genemanifest/blobstore/s3"
	"github.com/hupe1980/genemanifest/cache"
	"github.com/hupe1980/genemanifest/config"
)

// remoteStore is what the commands need from an object store.
type remoteStore interface {
	blobstore.Store
	blobstore.Lister
}

func openStore(ctx context.Context, rc config.RemoteConfig) (remoteStore, error) {
	switch rc.Provider {
	case config.ProviderS3:
		opts := []func(*s3.Options){
			s3.WithRegion(rc.Region),
			s3.WithProfile(rc.Profile),
			s3.WithDownloadConcurrency(rc.DownloadConcurrency),
		}
		if rc.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(rc.Endpoint))
		}
		return s3.New(ctx, opts...)
	case config.ProviderMinIO:
		return minio.Dial(rc.Endpoint, rc.AccessKey, rc.SecretKey, rc.Region, rc.UseSSL)
	case config.ProviderLocal:
		return blobstore.NewLocalStore(rc.LocalRoot), nil
	default:
		return nil, fmt.Errorf("unknown remote provider %q", rc.Provider)
	}
}

func openCache(ctx context.Context) (*cache.ObjectCache, error) {
	store, err := openStore(ctx, cfg.Remote)
	if err != nil {
		return nil, fmt.Errorf("failed to open object store: %w", err)
	}
	return cache.New(cfg.Cache.Root, store, cache.WithLogger(logger)), nil
}
