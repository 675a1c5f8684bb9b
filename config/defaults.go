package config

import (
	"os"
	"path/filepath"

	"github.com/hupe1980/genemanifest/columnar"
	"github.com/hupe1980/genemanifest/ingest"
	"github.com/hupe1980/genemanifest/manifest"
	"github.com/spf13/viper"
)

// Providers.
const (
	ProviderS3    = "s3"
	ProviderMinIO = "minio"
	ProviderLocal = "local"
)

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("cache.root", filepath.Join(os.TempDir(), "genemanifest"))

	v.SetDefault("ingest.chunk_size", ingest.DefaultChunkSize)
	v.SetDefault("ingest.progress_every", ingest.DefaultProgressEvery)
	v.SetDefault("ingest.row_group_min", ingest.DefaultRowGroupMin)
	v.SetDefault("ingest.row_group_max", ingest.DefaultRowGroupMax)
	v.SetDefault("ingest.compression", columnar.CompressionSnappy)
	v.SetDefault("ingest.pattern", manifest.DefaultPattern)

	v.SetDefault("remote.provider", ProviderS3)
	v.SetDefault("remote.region", "")
	v.SetDefault("remote.profile", "")
	v.SetDefault("remote.endpoint", "")
	v.SetDefault("remote.access_key", "")
	v.SetDefault("remote.secret_key", "")
	v.SetDefault("remote.use_ssl", true)
	v.SetDefault("remote.local_root", ".")
	v.SetDefault("remote.download_concurrency", 1)
}
