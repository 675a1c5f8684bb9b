package config

import (
	"fmt"
	"strings"

	"github.com/hupe1980/genemanifest/columnar"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	if c.Cache.Root == "" {
		return fmt.Errorf("cache.root cannot be empty")
	}

	if c.Ingest.ChunkSize <= 0 {
		return fmt.Errorf("ingest.chunk_size must be > 0, got %d", c.Ingest.ChunkSize)
	}
	if c.Ingest.ProgressEvery < 0 {
		return fmt.Errorf("ingest.progress_every must be >= 0, got %d", c.Ingest.ProgressEvery)
	}
	if c.Ingest.RowGroupMin <= 0 || c.Ingest.RowGroupMax < c.Ingest.RowGroupMin {
		return fmt.Errorf("ingest.row_group_min/max must satisfy 0 < min <= max, got %d/%d",
			c.Ingest.RowGroupMin, c.Ingest.RowGroupMax)
	}
	switch c.Ingest.Compression {
	case columnar.CompressionSnappy, columnar.CompressionZstd, columnar.CompressionGzip, columnar.CompressionUncompressed:
	default:
		return fmt.Errorf("ingest.compression: unsupported codec %q", c.Ingest.Compression)
	}

	switch c.Remote.Provider {
	case ProviderS3:
	case ProviderMinIO:
		if c.Remote.Endpoint == "" {
			return fmt.Errorf("remote.endpoint is required for the minio provider")
		}
	case ProviderLocal:
		if c.Remote.LocalRoot == "" {
			return fmt.Errorf("remote.local_root is required for the local provider")
		}
	default:
		return fmt.Errorf("remote.provider must be s3, minio or local, got %q", c.Remote.Provider)
	}
	if c.Remote.DownloadConcurrency < 1 {
		return fmt.Errorf("remote.download_concurrency must be >= 1, got %d", c.Remote.DownloadConcurrency)
	}
	return nil
}
