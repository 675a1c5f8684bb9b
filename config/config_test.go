package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/genemanifest/ingest"
	"github.com/hupe1980/genemanifest/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ingest.DefaultChunkSize, cfg.Ingest.ChunkSize)
	assert.Equal(t, ingest.DefaultRowGroupMin, cfg.Ingest.RowGroupMin)
	assert.Equal(t, ingest.DefaultRowGroupMax, cfg.Ingest.RowGroupMax)
	assert.Equal(t, "snappy", cfg.Ingest.Compression)
	assert.Equal(t, manifest.DefaultPattern, cfg.Ingest.Pattern)
	assert.Equal(t, ProviderS3, cfg.Remote.Provider)
	assert.Equal(t, 1, cfg.Remote.DownloadConcurrency)
	assert.NotEmpty(t, cfg.Cache.Root)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genemanifest.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
format = "json"

[ingest]
chunk_size = 500
compression = "zstd"

[remote]
provider = "minio"
endpoint = "localhost:9000"
`), 0o644))

	t.Setenv("GENEMANIFEST_CACHE_ROOT", "/var/cache/gm")
	t.Setenv("GENEMANIFEST_INGEST_CHUNK_SIZE", "250")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/var/cache/gm", cfg.Cache.Root)
	assert.Equal(t, 250, cfg.Ingest.ChunkSize, "env overrides file")
	assert.Equal(t, "zstd", cfg.Ingest.Compression)
	assert.Equal(t, ProviderMinIO, cfg.Remote.Provider)
	assert.Equal(t, "localhost:9000", cfg.Remote.Endpoint)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"empty cache root", func(c *Config) { c.Cache.Root = "" }},
		{"zero chunk size", func(c *Config) { c.Ingest.ChunkSize = 0 }},
		{"inverted row groups", func(c *Config) { c.Ingest.RowGroupMin, c.Ingest.RowGroupMax = 10, 5 }},
		{"bad codec", func(c *Config) { c.Ingest.Compression = "brotli" }},
		{"bad provider", func(c *Config) { c.Remote.Provider = "gcs" }},
		{"minio without endpoint", func(c *Config) { c.Remote.Provider = ProviderMinIO }},
		{"zero concurrency", func(c *Config) { c.Remote.DownloadConcurrency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLogger(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NotNil(t, cfg.Logger())

	cfg.Log.Format = "json"
	cfg.Log.Level = "debug"
	assert.NotNil(t, cfg.Logger())

	assert.Len(t, cfg.IngestOptions(), 3)
}
